package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleAssessor UserRole = "assessor"
	RoleHR       UserRole = "hr"
	RoleApprover UserRole = "approver"
)

var roleHumanName = map[UserRole]string{
	RoleAdmin:    "Administrator",
	RoleAssessor: "Assessor",
	RoleHR:       "HR Manager",
	RoleApprover: "Approver (CEO)",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

// IsSigner - роль, у которой есть своя подпись в форме
func (r UserRole) IsSigner() bool {
	return r == RoleAssessor || r == RoleHR || r == RoleApprover
}

const SystemUser = "System"
