package models

type EvaluationStatus string

const (
	EvaluationStatusDraft           EvaluationStatus = "draft"
	EvaluationStatusPendingHR       EvaluationStatus = "pending_hr"
	EvaluationStatusPendingApproval EvaluationStatus = "pending_approval"
	EvaluationStatusCompleted       EvaluationStatus = "completed"
)

var evaluationStatusHumanName = map[EvaluationStatus]string{
	EvaluationStatusDraft:           "Draft",
	EvaluationStatusPendingHR:       "Pending HR",
	EvaluationStatusPendingApproval: "Pending CEO",
	EvaluationStatusCompleted:       "Completed",
}

var evaluationStatusRank = map[EvaluationStatus]int{
	EvaluationStatusDraft:           0,
	EvaluationStatusPendingHR:       1,
	EvaluationStatusPendingApproval: 2,
	EvaluationStatusCompleted:       3,
}

func (s EvaluationStatus) ToHuman() string {
	if human, exist := evaluationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s EvaluationStatus) IsValid() bool {
	_, ok := evaluationStatusHumanName[s]
	return ok
}

// IsAfter - статус находится дальше по цепочке согласования, чем other
func (s EvaluationStatus) IsAfter(other EvaluationStatus) bool {
	return evaluationStatusRank[s] > evaluationStatusRank[other]
}

var EvaluationStatusList = []EvaluationStatus{
	EvaluationStatusDraft,
	EvaluationStatusPendingHR,
	EvaluationStatusPendingApproval,
	EvaluationStatusCompleted,
}

type EvaluationSection string

const (
	SectionGeneral  EvaluationSection = "general"
	SectionHR       EvaluationSection = "hr"
	SectionApprover EvaluationSection = "approver"
)

type OpinionKind string

const (
	OpinionNone    OpinionKind = ""
	OpinionPass    OpinionKind = "pass"
	OpinionNotPass OpinionKind = "not_pass"
	OpinionOther   OpinionKind = "other"
)

func (o OpinionKind) IsValid() bool {
	switch o {
	case OpinionNone, OpinionPass, OpinionNotPass, OpinionOther:
		return true
	}
	return false
}

type HistoryAction string

const (
	HistoryActionSave   HistoryAction = "save"
	HistoryActionSign   HistoryAction = "sign"
	HistoryActionReset  HistoryAction = "reset"
	HistoryActionDelete HistoryAction = "delete"
)
