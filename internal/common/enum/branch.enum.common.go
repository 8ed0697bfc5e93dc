package enum

type BranchEnum string

const (
	BRANCH_MANILA      BranchEnum = "Manila"
	BRANCH_QUEZON_CITY BranchEnum = "Quezon City"
	BRANCH_CALOOCAN    BranchEnum = "Caloocan"
	BRANCH_PASIG       BranchEnum = "Pasig"
	BRANCH_PARANAQUE   BranchEnum = "Parañaque"
)

func (e BranchEnum) ToString() string {
	if e.IsValid() {
		return string(e)
	}
	return ""
}

func (e BranchEnum) IsValid() bool {
	switch e {
	case BRANCH_MANILA, BRANCH_QUEZON_CITY, BRANCH_CALOOCAN, BRANCH_PASIG, BRANCH_PARANAQUE:
		return true
	}
	return false
}

// Branches lists the pickup branches in display order.
func Branches() []BranchEnum {
	return []BranchEnum{
		BRANCH_MANILA,
		BRANCH_QUEZON_CITY,
		BRANCH_CALOOCAN,
		BRANCH_PASIG,
		BRANCH_PARANAQUE,
	}
}
