package form

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"probation-eval-backend/lib/evaluation/policy"
	"probation-eval-backend/lib/evaluation/score"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

// Form - рабочая копия оценки в рамках одной сессии.
// Изменения живут только в памяти до успешного сохранения.
type Form struct {
	session         Session
	record          *dbmodels.Evaluation
	persistedStatus models.EvaluationStatus
	isNew           bool
	busy            bool
	closed          bool
	capture         *SignatureCapture
	reset           *ResetConfirmation
}

type SignatureCapture struct {
	Target models.UserRole
	used   bool
}

type ResetConfirmation struct {
	EvaluationID string
	used         bool
}

func New(session Session, record *dbmodels.Evaluation) *Form {
	f := &Form{session: session}
	if record == nil {
		f.record = &dbmodels.Evaluation{Ratings: dbmodels.Ratings{}}
		f.isNew = true
	} else {
		f.record = record.Clone()
		if f.record.Ratings == nil {
			f.record.Ratings = dbmodels.Ratings{}
		}
	}
	f.persistedStatus = f.record.Status()
	return f
}

func (f *Form) Session() Session {
	return f.session
}

// Record - копия рабочего состояния
func (f *Form) Record() *dbmodels.Evaluation {
	return f.record.Clone()
}

func (f *Form) Status() models.EvaluationStatus {
	return f.record.Status()
}

func (f *Form) PersistedStatus() models.EvaluationStatus {
	return f.persistedStatus
}

func (f *Form) IsNew() bool {
	return f.isNew
}

func (f *Form) Busy() bool {
	return f.busy
}

func (f *Form) Closed() bool {
	return f.closed
}

func (f *Form) Close() {
	f.closed = true
	f.capture = nil
	f.reset = nil
}

func (f *Form) Score() score.Result {
	return f.record.Score()
}

func (f *Form) CanEdit(section models.EvaluationSection) bool {
	return policy.CanEdit(f.session.Role, section, f.record.Status(), f.session.IsGuest)
}

func (f *Form) alive() error {
	if f.closed {
		return workflow.AuthorizationError("session ended")
	}
	return nil
}

func (f *Form) checkEdit(field Field) error {
	if err := f.alive(); err != nil {
		return err
	}
	section, ok := field.Section()
	if !ok {
		return workflow.ValidationError("unknown field: %v", field)
	}
	if !f.CanEdit(section) {
		return workflow.AuthorizationError("%v cannot edit %v", f.session.Role.ToHuman(), field)
	}
	if field.isEmployeeInfo() && !policy.CanEditEmployeeInfo(f.session.Role, f.record.Status(), f.session.IsGuest) {
		return workflow.AuthorizationError("%v cannot edit %v", f.session.Role.ToHuman(), field)
	}
	return nil
}

// ApplyField - изменение текстового поля
func (f *Form) ApplyField(field Field, value string) error {
	if err := f.checkEdit(field); err != nil {
		return err
	}
	switch field {
	case FieldEmployeeName:
		f.record.EmployeeName = value
	case FieldEmployeeID:
		f.record.EmployeeID = value
	case FieldPosition:
		f.record.Position = value
	case FieldSection:
		f.record.Section = value
	case FieldDepartment:
		f.record.Department = value
	case FieldStartDate:
		f.record.StartDate = value
	case FieldDueProbationDate:
		f.record.DueProbationDate = value
	case FieldHrOpinion:
		f.record.HrOpinion = value
	case FieldApproverOpinion:
		f.record.ApproverOpinion = value
	default:
		return workflow.ValidationError("%v is not a text field", field)
	}
	return nil
}

// SelectEmployee копирует данные сотрудника из справочника по значению
func (f *Form) SelectEmployee(entry dbmodels.Employee) error {
	if err := f.checkEdit(FieldEmployeeName); err != nil {
		return err
	}
	f.record.EmployeeName = entry.Name
	f.record.EmployeeID = entry.ID
	f.record.Position = entry.Position
	f.record.Section = entry.Section
	f.record.Department = entry.Department
	f.record.StartDate = entry.StartDate
	f.record.DueProbationDate = entry.DueProbationDate
	return nil
}

func (f *Form) SetAttendance(attendance dbmodels.Attendance) error {
	if err := f.checkEdit(FieldAttendance); err != nil {
		return err
	}
	for _, c := range []dbmodels.Counter{attendance.SickLeave, attendance.PersonalLeave, attendance.OtherLeave, attendance.Late, attendance.Absence} {
		if c.Count < 0 || c.SubUnit < 0 {
			return workflow.ValidationError("attendance counters must not be negative")
		}
	}
	f.record.Attendance = attendance
	return nil
}

func (f *Form) SetRating(topicID, rating int) (score.Result, error) {
	if err := f.checkEdit(FieldRatings); err != nil {
		return f.Score(), err
	}
	if err := score.ValidateRating(topicID, rating); err != nil {
		return f.Score(), err
	}
	f.record.Ratings[topicID] = rating
	return f.Score(), nil
}

func (f *Form) ClearRating(topicID int) (score.Result, error) {
	if err := f.checkEdit(FieldRatings); err != nil {
		return f.Score(), err
	}
	delete(f.record.Ratings, topicID)
	return f.Score(), nil
}

// SetOpinion - выбор одного из трех вариантов сбрасывает два других
func (f *Form) SetOpinion(kind models.OpinionKind, text string) error {
	if err := f.checkEdit(FieldOpinion); err != nil {
		return err
	}
	if !kind.IsValid() {
		return workflow.ValidationError("unknown opinion: %v", kind)
	}
	rec := f.record
	rec.PassProbation, rec.NotPassProbation, rec.OtherOpinion = false, false, false
	rec.NotPassReason, rec.OtherOpinionText = "", ""
	switch kind {
	case models.OpinionPass:
		rec.PassProbation = true
	case models.OpinionNotPass:
		rec.NotPassProbation = true
		rec.NotPassReason = text
	case models.OpinionOther:
		rec.OtherOpinion = true
		rec.OtherOpinionText = text
	}
	return nil
}

func (f *Form) OpenSignature(target models.UserRole) (*SignatureCapture, error) {
	if err := f.alive(); err != nil {
		return nil, err
	}
	if f.busy {
		return nil, workflow.BusyError("save is in progress")
	}
	status := f.record.Status()
	if err := workflow.CheckSign(f.session.Role, target, status, f.session.IsGuest); err != nil {
		return nil, err
	}
	section, _ := policy.SectionOf(target)
	if !policy.CanEdit(f.session.Role, section, status, f.session.IsGuest) {
		return nil, workflow.AuthorizationError("%v cannot sign at this stage", f.session.Role.ToHuman())
	}
	f.capture = &SignatureCapture{Target: target}
	return f.capture, nil
}

// ConfirmSignature сохраняет подпись только в рабочем состоянии
func (f *Form) ConfirmSignature(capture *SignatureCapture, payload string) error {
	if err := f.alive(); err != nil {
		return err
	}
	if f.busy {
		return workflow.BusyError("save is in progress")
	}
	if capture == nil || capture != f.capture || capture.used {
		return workflow.ValidationError("signature capture is not open")
	}
	sig, err := workflow.ApplySignature(f.record.Signatures(), capture.Target, payload)
	if err != nil {
		return err
	}
	f.record.SetSignatures(sig)
	capture.used = true
	f.capture = nil
	return nil
}

func (f *Form) RequestReset() (*ResetConfirmation, error) {
	if err := f.alive(); err != nil {
		return nil, err
	}
	if err := workflow.CheckReset(f.session.Role, f.record.Status(), f.session.IsGuest); err != nil {
		return nil, err
	}
	f.reset = &ResetConfirmation{EvaluationID: f.record.ID}
	return f.reset, nil
}

func (f *Form) ConfirmReset(confirmation *ResetConfirmation) error {
	if err := f.alive(); err != nil {
		return err
	}
	if confirmation == nil || confirmation != f.reset || confirmation.used {
		return workflow.ValidationError("reset was not requested")
	}
	if err := workflow.CheckReset(f.session.Role, f.record.Status(), f.session.IsGuest); err != nil {
		return err
	}
	f.record.SetSignatures(workflow.Reset(f.record.Signatures()))
	confirmation.used = true
	f.reset = nil
	return nil
}

func (f *Form) Validate() error {
	if strings.TrimSpace(f.record.EmployeeName) == "" {
		return workflow.ValidationError("employee name is required")
	}
	return nil
}

// BeginSave проверяет форму, выдает id при первом сохранении и возвращает снимок для записи в хранилище
func (f *Form) BeginSave(now time.Time) (*dbmodels.Evaluation, error) {
	if err := f.alive(); err != nil {
		return nil, err
	}
	if f.busy {
		return nil, workflow.BusyError("save is in progress")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.record.ID == "" {
		f.record.ID = uuid.NewString()
	}
	f.record.LastUpdated = now
	f.record.UpdatedBy = f.session.Actor()
	f.record.RefreshSnapshots()
	f.busy = true
	return f.record.Clone(), nil
}

// EndSave - saved == nil означает неудачу, рабочее состояние остается как было
func (f *Form) EndSave(saved *dbmodels.Evaluation) {
	f.busy = false
	if saved == nil {
		return
	}
	f.record = saved.Clone()
	f.persistedStatus = f.record.Status()
	f.isNew = false
	if f.session.IsGuest {
		f.Close()
	}
}
