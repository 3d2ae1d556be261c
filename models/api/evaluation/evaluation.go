package evaluationapimodels

import (
	"time"

	"probation-eval-backend/lib/evaluation/score"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

type Counter struct {
	Count   int `json:"count"`    // дни / разы
	SubUnit int `json:"sub_unit"` // часы / минуты
}

type Attendance struct {
	AttendFrom    string  `json:"attend_from"`
	AttendTo      string  `json:"attend_to"`
	SickLeave     Counter `json:"sick_leave"`
	PersonalLeave Counter `json:"personal_leave"`
	OtherLeave    Counter `json:"other_leave"`
	Late          Counter `json:"late"`
	Absence       Counter `json:"absence"`
}

func (a Attendance) validate() error {
	for _, c := range []Counter{a.SickLeave, a.PersonalLeave, a.OtherLeave, a.Late, a.Absence} {
		if c.Count < 0 || c.SubUnit < 0 {
			return errNegativeCounter
		}
	}
	return nil
}

func (a Attendance) ToDB() dbmodels.Attendance {
	conv := func(c Counter) dbmodels.Counter {
		return dbmodels.Counter{Count: c.Count, SubUnit: c.SubUnit}
	}
	return dbmodels.Attendance{
		AttendFrom:    a.AttendFrom,
		AttendTo:      a.AttendTo,
		SickLeave:     conv(a.SickLeave),
		PersonalLeave: conv(a.PersonalLeave),
		OtherLeave:    conv(a.OtherLeave),
		Late:          conv(a.Late),
		Absence:       conv(a.Absence),
	}
}

func AttendanceFromDB(a dbmodels.Attendance) Attendance {
	conv := func(c dbmodels.Counter) Counter {
		return Counter{Count: c.Count, SubUnit: c.SubUnit}
	}
	return Attendance{
		AttendFrom:    a.AttendFrom,
		AttendTo:      a.AttendTo,
		SickLeave:     conv(a.SickLeave),
		PersonalLeave: conv(a.PersonalLeave),
		OtherLeave:    conv(a.OtherLeave),
		Late:          conv(a.Late),
		Absence:       conv(a.Absence),
	}
}

type Opinion struct {
	PassProbation    bool   `json:"pass_probation"`
	NotPassProbation bool   `json:"not_pass_probation"`
	NotPassReason    string `json:"not_pass_reason"`
	OtherOpinion     bool   `json:"other_opinion"`
	OtherOpinionText string `json:"other_opinion_text"`
}

// Kind - выбранный вариант заключения (если выставлено несколько флагов, берется первый)
func (o Opinion) Kind() models.OpinionKind {
	switch {
	case o.PassProbation:
		return models.OpinionPass
	case o.NotPassProbation:
		return models.OpinionNotPass
	case o.OtherOpinion:
		return models.OpinionOther
	}
	return models.OpinionNone
}

func (o Opinion) Text() string {
	switch o.Kind() {
	case models.OpinionNotPass:
		return o.NotPassReason
	case models.OpinionOther:
		return o.OtherOpinionText
	}
	return ""
}

type Signatures struct {
	AssessorSign string `json:"assessor_sign"`
	HrSign       string `json:"hr_sign"`
	ApproverSign string `json:"approver_sign"`
}

type EvaluationView struct {
	ID               string                  `json:"id"`
	EmployeeName     string                  `json:"employee_name"`
	EmployeeID       string                  `json:"employee_id"`
	Position         string                  `json:"position"`
	Section          string                  `json:"section"`
	Department       string                  `json:"department"`
	StartDate        string                  `json:"start_date"`
	DueProbationDate string                  `json:"due_probation_date"`
	Attendance       Attendance              `json:"attendance"`
	Ratings          map[int]int             `json:"ratings"`
	Opinion          Opinion                 `json:"opinion"`
	Signatures       Signatures              `json:"signatures"`
	HrOpinion        string                  `json:"hr_opinion"`
	ApproverOpinion  string                  `json:"approver_opinion"`
	Status           models.EvaluationStatus `json:"status"`
	StatusHuman      string                  `json:"status_human"`
	TotalScore       float64                 `json:"total_score"`
	MeanScore        float64                 `json:"mean_score"`
	Passed           bool                    `json:"passed"`
	LastUpdated      time.Time               `json:"last_updated"`
	UpdatedBy        string                  `json:"updated_by"`
}

func EvaluationConvert(rec dbmodels.Evaluation) EvaluationView {
	status := rec.Status()
	res := rec.Score()
	ratings := map[int]int{}
	for k, v := range rec.Ratings {
		ratings[k] = v
	}
	return EvaluationView{
		ID:               rec.ID,
		EmployeeName:     rec.EmployeeName,
		EmployeeID:       rec.EmployeeID,
		Position:         rec.Position,
		Section:          rec.Section,
		Department:       rec.Department,
		StartDate:        rec.StartDate,
		DueProbationDate: rec.DueProbationDate,
		Attendance:       AttendanceFromDB(rec.Attendance),
		Ratings:          ratings,
		Opinion: Opinion{
			PassProbation:    rec.PassProbation,
			NotPassProbation: rec.NotPassProbation,
			NotPassReason:    rec.NotPassReason,
			OtherOpinion:     rec.OtherOpinion,
			OtherOpinionText: rec.OtherOpinionText,
		},
		Signatures: Signatures{
			AssessorSign: rec.AssessorSign,
			HrSign:       rec.HrSign,
			ApproverSign: rec.ApproverSign,
		},
		HrOpinion:       rec.HrOpinion,
		ApproverOpinion: rec.ApproverOpinion,
		Status:          status,
		StatusHuman:     status.ToHuman(),
		TotalScore:      score.Round2(res.Total),
		MeanScore:       score.Round2(res.Mean),
		Passed:          res.Passed(),
		LastUpdated:     rec.LastUpdated,
		UpdatedBy:       rec.UpdatedBy,
	}
}

// EvaluationShortView - строка списка, без подписей
type EvaluationShortView struct {
	ID           string                  `json:"id"`
	EmployeeName string                  `json:"employee_name"`
	EmployeeID   string                  `json:"employee_id"`
	Position     string                  `json:"position"`
	Department   string                  `json:"department"`
	Status       models.EvaluationStatus `json:"status"`
	StatusHuman  string                  `json:"status_human"`
	TotalScore   float64                 `json:"total_score"`
	MeanScore    float64                 `json:"mean_score"`
	Passed       bool                    `json:"passed"`
	LastUpdated  time.Time               `json:"last_updated"`
	UpdatedBy    string                  `json:"updated_by"`
}

// EvaluationShortConvert - по снимку статуса, подписи в списке не загружаются
func EvaluationShortConvert(rec dbmodels.Evaluation) EvaluationShortView {
	status := rec.StatusSnapshot
	return EvaluationShortView{
		ID:           rec.ID,
		EmployeeName: rec.EmployeeName,
		EmployeeID:   rec.EmployeeID,
		Position:     rec.Position,
		Department:   rec.Department,
		Status:       status,
		StatusHuman:  status.ToHuman(),
		TotalScore:   rec.TotalScore,
		MeanScore:    rec.MeanScore,
		Passed:       rec.TotalScore >= score.PassMark,
		LastUpdated:  rec.LastUpdated,
		UpdatedBy:    rec.UpdatedBy,
	}
}
