package policy

import (
	"probation-eval-backend/models"
)

func SectionOf(role models.UserRole) (models.EvaluationSection, bool) {
	switch role {
	case models.RoleAdmin, models.RoleAssessor:
		return models.SectionGeneral, true
	case models.RoleHR:
		return models.SectionHR, true
	case models.RoleApprover:
		return models.SectionApprover, true
	}
	return "", false
}

// CanEdit - правила применяются по порядку, первое совпадение решает
func CanEdit(role models.UserRole, section models.EvaluationSection, status models.EvaluationStatus, isGuest bool) bool {
	if status == models.EvaluationStatusCompleted {
		return false
	}
	if isGuest {
		if role == models.RoleAdmin {
			return false
		}
		own, ok := SectionOf(role)
		if !ok || own != section {
			return false
		}
		if section == models.SectionGeneral && status != models.EvaluationStatusDraft {
			return false
		}
	}
	switch section {
	case models.SectionGeneral:
		return (role == models.RoleAdmin || role == models.RoleAssessor) && status == models.EvaluationStatusDraft
	case models.SectionHR:
		return role == models.RoleHR
	case models.SectionApprover:
		return role == models.RoleApprover
	}
	return false
}

// CanEditEmployeeInfo - даты начала и окончания испытательного срока правит только админ
func CanEditEmployeeInfo(role models.UserRole, status models.EvaluationStatus, isGuest bool) bool {
	return role == models.RoleAdmin && CanEdit(role, models.SectionGeneral, status, isGuest)
}
