package dbmodels

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
	"probation-eval-backend/lib/evaluation/score"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/models"
)

type Evaluation struct {
	BaseModel
	EmployeeName     string `gorm:"type:varchar(255);index"`
	EmployeeID       string `gorm:"type:varchar(64);index"`
	Position         string
	Section          string
	Department       string
	StartDate        string
	DueProbationDate string
	Attendance       Attendance `gorm:"type:jsonb"`
	Ratings          Ratings    `gorm:"type:jsonb"`
	PassProbation    bool
	NotPassProbation bool
	NotPassReason    string
	OtherOpinion     bool
	OtherOpinionText string
	AssessorSign     string `gorm:"type:text"`
	HrSign           string `gorm:"type:text"`
	ApproverSign     string `gorm:"type:text"`
	HrOpinion        string
	ApproverOpinion  string
	// снимок для списков и поиска, перезаписывается при каждом сохранении
	StatusSnapshot models.EvaluationStatus `gorm:"column:status;type:varchar(32);index"`
	TotalScore     float64
	MeanScore      float64
	LastUpdated    time.Time
	UpdatedBy      string
}

func (e Evaluation) Signatures() workflow.Signatures {
	return workflow.Signatures{
		Assessor: e.AssessorSign,
		HR:       e.HrSign,
		Approver: e.ApproverSign,
	}
}

func (e *Evaluation) SetSignatures(sig workflow.Signatures) {
	e.AssessorSign = sig.Assessor
	e.HrSign = sig.HR
	e.ApproverSign = sig.Approver
}

// Status всегда вычисляется по подписям
func (e Evaluation) Status() models.EvaluationStatus {
	return workflow.DeriveStatus(e.Signatures())
}

func (e Evaluation) Score() score.Result {
	return score.Calculate(e.Ratings)
}

// RefreshSnapshots обновляет денормализованные поля статуса и баллов
func (e *Evaluation) RefreshSnapshots() {
	e.StatusSnapshot = e.Status()
	res := e.Score()
	e.TotalScore = score.Round2(res.Total)
	e.MeanScore = score.Round2(res.Mean)
}

func (e *Evaluation) BeforeSave(tx *gorm.DB) error {
	e.RefreshSnapshots()
	return nil
}

// Clone - копия без общих ссылочных данных
func (e Evaluation) Clone() *Evaluation {
	clone := e
	clone.Ratings = make(Ratings, len(e.Ratings))
	for k, v := range e.Ratings {
		clone.Ratings[k] = v
	}
	return &clone
}

type Counter struct {
	Count   int `json:"count"`
	SubUnit int `json:"sub_unit"`
}

type Attendance struct {
	AttendFrom    string  `json:"attend_from"`
	AttendTo      string  `json:"attend_to"`
	SickLeave     Counter `json:"sick_leave"`     // дни / часы
	PersonalLeave Counter `json:"personal_leave"` // дни / часы
	OtherLeave    Counter `json:"other_leave"`    // дни / часы
	Late          Counter `json:"late"`           // раз / минут
	Absence       Counter `json:"absence"`        // дни / часы
}

func (j Attendance) Value() (driver.Value, error) {
	return jsonValue(j)
}

func (j *Attendance) Scan(value any) error {
	return jsonScan(value, j)
}

// Ratings - номер темы -> оценка 1..7
type Ratings map[int]int

func (j Ratings) Value() (driver.Value, error) {
	if j == nil {
		return jsonValue(map[int]int{})
	}
	return jsonValue(map[int]int(j))
}

func (j *Ratings) Scan(value any) error {
	return jsonScan(value, j)
}
