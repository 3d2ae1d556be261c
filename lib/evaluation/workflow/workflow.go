package workflow

import (
	"probation-eval-backend/models"
)

type Signatures struct {
	Assessor string `json:"assessor_sign"`
	HR       string `json:"hr_sign"`
	Approver string `json:"approver_sign"`
}

func (s Signatures) Get(role models.UserRole) string {
	switch role {
	case models.RoleAssessor:
		return s.Assessor
	case models.RoleHR:
		return s.HR
	case models.RoleApprover:
		return s.Approver
	}
	return ""
}

func (s Signatures) Has(role models.UserRole) bool {
	return s.Get(role) != ""
}

// DeriveStatus - статус целиком определяется набором подписей
func DeriveStatus(sig Signatures) models.EvaluationStatus {
	switch {
	case sig.Approver != "":
		return models.EvaluationStatusCompleted
	case sig.HR != "":
		return models.EvaluationStatusPendingApproval
	case sig.Assessor != "":
		return models.EvaluationStatusPendingHR
	}
	return models.EvaluationStatusDraft
}

// CheckSign проверяет, может ли role поставить подпись target при текущем статусе.
// Сначала проверяются права, затем очередность.
func CheckSign(role, target models.UserRole, status models.EvaluationStatus, isGuest bool) error {
	if !target.IsSigner() {
		return ValidationError("unknown signature: %v", target)
	}
	if role != target {
		if isGuest {
			return AuthorizationError("access link does not allow signing as %v", target.ToHuman())
		}
		return AuthorizationError("%v is not allowed to sign as %v", role.ToHuman(), target.ToHuman())
	}
	if status == models.EvaluationStatusCompleted {
		return PhaseGuardError("evaluation is already completed")
	}
	switch target {
	case models.RoleAssessor:
		if status != models.EvaluationStatusDraft {
			return PhaseGuardError("assessor has already signed")
		}
	case models.RoleHR:
		if status == models.EvaluationStatusDraft {
			return PhaseGuardError("assessor must act first")
		}
	case models.RoleApprover:
		if status != models.EvaluationStatusPendingApproval {
			return PhaseGuardError("HR must review first")
		}
	}
	return nil
}

func ApplySignature(sig Signatures, target models.UserRole, payload string) (Signatures, error) {
	if payload == "" {
		return sig, ValidationError("signature is empty")
	}
	switch target {
	case models.RoleAssessor:
		sig.Assessor = payload
	case models.RoleHR:
		sig.HR = payload
	case models.RoleApprover:
		sig.Approver = payload
	default:
		return sig, ValidationError("unknown signature: %v", target)
	}
	return sig, nil
}

func CheckReset(role models.UserRole, status models.EvaluationStatus, isGuest bool) error {
	if isGuest {
		return AuthorizationError("access link does not allow reset")
	}
	if role != models.RoleAdmin && role != models.RoleAssessor {
		return AuthorizationError("%v is not allowed to reset the evaluation", role.ToHuman())
	}
	if status == models.EvaluationStatusDraft {
		return PhaseGuardError("evaluation is already a draft")
	}
	return nil
}

func Reset(Signatures) Signatures {
	return Signatures{}
}

// NextRole - чья подпись ожидается следующей
func NextRole(status models.EvaluationStatus) (models.UserRole, bool) {
	switch status {
	case models.EvaluationStatusDraft:
		return models.RoleAssessor, true
	case models.EvaluationStatusPendingHR:
		return models.RoleHR, true
	case models.EvaluationStatusPendingApproval:
		return models.RoleApprover, true
	}
	return "", false
}
