package form

import (
	"probation-eval-backend/models"
)

type Field string

const (
	FieldEmployeeName     Field = "employee_name"
	FieldEmployeeID       Field = "employee_id"
	FieldPosition         Field = "position"
	FieldSection          Field = "section"
	FieldDepartment       Field = "department"
	FieldStartDate        Field = "start_date"
	FieldDueProbationDate Field = "due_probation_date"
	FieldAttendance       Field = "attendance"
	FieldRatings          Field = "ratings"
	FieldOpinion          Field = "opinion"
	FieldHrOpinion        Field = "hr_opinion"
	FieldApproverOpinion  Field = "approver_opinion"
)

var fieldSection = map[Field]models.EvaluationSection{
	FieldEmployeeName:     models.SectionGeneral,
	FieldEmployeeID:       models.SectionGeneral,
	FieldPosition:         models.SectionGeneral,
	FieldSection:          models.SectionGeneral,
	FieldDepartment:       models.SectionGeneral,
	FieldStartDate:        models.SectionGeneral,
	FieldDueProbationDate: models.SectionGeneral,
	FieldAttendance:       models.SectionGeneral,
	FieldRatings:          models.SectionGeneral,
	FieldOpinion:          models.SectionGeneral,
	FieldHrOpinion:        models.SectionHR,
	FieldApproverOpinion:  models.SectionApprover,
}

func (f Field) Section() (models.EvaluationSection, bool) {
	section, ok := fieldSection[f]
	return section, ok
}

// employee info - даты испытательного срока правит только админ
func (f Field) isEmployeeInfo() bool {
	return f == FieldStartDate || f == FieldDueProbationDate
}
