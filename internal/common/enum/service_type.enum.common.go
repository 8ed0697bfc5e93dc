package enum

type ServiceTypeEnum string

const (
	DELIVERY ServiceTypeEnum = "delivery"
	PICKUP   ServiceTypeEnum = "pickup"
)

func (e ServiceTypeEnum) ToString() string {
	switch e {
	case DELIVERY:
		return "delivery"
	case PICKUP:
		return "pickup"
	}
	return ""
}

func (e ServiceTypeEnum) IsValid() bool {
	switch e {
	case DELIVERY, PICKUP:
		return true
	}
	return false
}

// ServiceTypes lists the service types in display order.
func ServiceTypes() []ServiceTypeEnum {
	return []ServiceTypeEnum{DELIVERY, PICKUP}
}
