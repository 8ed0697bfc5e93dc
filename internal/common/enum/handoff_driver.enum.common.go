package enum

type HandoffDriverEnum string

const (
	HANDOFF_LINK  HandoffDriverEnum = "link"
	HANDOFF_QUEUE HandoffDriverEnum = "queue"
)

func (e HandoffDriverEnum) ToString() string {
	switch e {
	case HANDOFF_LINK:
		return "link"
	case HANDOFF_QUEUE:
		return "queue"
	}
	return ""
}

func (e HandoffDriverEnum) IsValid() bool {
	switch e {
	case HANDOFF_LINK, HANDOFF_QUEUE:
		return true
	}
	return false
}
