package evaluationhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	accesslink "probation-eval-backend/lib/access-link"
	"probation-eval-backend/lib/employee"
	"probation-eval-backend/lib/evaluation/form"
	evaluationhistorystore "probation-eval-backend/lib/evaluation/history-store"
	evaluationstore "probation-eval-backend/lib/evaluation/store"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/lib/notify"
	"probation-eval-backend/lib/settings"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	"probation-eval-backend/lib/utils/lock"
	connectionhub "probation-eval-backend/lib/ws/hub/connection-hub"
	"probation-eval-backend/models"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	dbmodels "probation-eval-backend/models/db"
	wsmodels "probation-eval-backend/models/ws"
)

type Provider interface {
	List(filter evaluationapimodels.ListFilter) ([]evaluationapimodels.EvaluationShortView, error)
	ListRecords(filter evaluationapimodels.ListFilter) ([]dbmodels.Evaluation, error)
	Stats() (evaluationapimodels.Stats, error)
	GetByID(session form.Session, id string) (*dbmodels.Evaluation, error)
	History(session form.Session, id string) ([]dbmodels.EvaluationHistory, error)
	Delete(ctx context.Context, session form.Session, id string) error
	Load(session form.Session, id string) (*form.Form, error)
	Save(ctx context.Context, f *form.Form) (evaluationapimodels.SaveResult, error)
	Edit(ctx context.Context, session form.Session, id string, data evaluationapimodels.EvaluationData) (evaluationapimodels.SaveResult, error)
	CheckSign(session form.Session, id string, target models.UserRole) error
	Sign(ctx context.Context, session form.Session, id string, target models.UserRole, data evaluationapimodels.SignRequest) (evaluationapimodels.SaveResult, error)
	RequestReset(session form.Session, id string) (evaluationapimodels.ResetRequestView, error)
	ConfirmReset(ctx context.Context, session form.Session, id, token string) (evaluationapimodels.SaveResult, error)
	IssueLink(session form.Session, id string, role models.UserRole) (evaluationapimodels.AccessLinkView, error)
}

var Instance Provider

type Deps struct {
	Store        evaluationstore.Provider
	HistoryStore evaluationhistorystore.Provider
	Notifier     notify.Provider
	Settings     settings.Provider
	Links        accesslink.Provider
	Employees    employee.Provider
	Hub          connectionhub.Provider
	ResetSecret  string
	ResetTTL     time.Duration
}

func NewHandler(deps Deps) {
	Instance = NewInstance(deps)
}

func NewInstance(deps Deps) Provider {
	return &impl{
		Deps: deps,
		now:  time.Now,
	}
}

type impl struct {
	Deps
	now func() time.Time
}

func (i impl) getLogger(session form.Session, id string) *log.Entry {
	return log.
		WithField("evaluation_id", id).
		WithField("role", session.Role).
		WithField("actor", session.Actor()).
		WithField("guest", session.IsGuest)
}

func (i impl) List(filter evaluationapimodels.ListFilter) ([]evaluationapimodels.EvaluationShortView, error) {
	list, err := i.ListRecords(filter)
	if err != nil {
		return nil, err
	}
	result := make([]evaluationapimodels.EvaluationShortView, 0, len(list))
	for _, rec := range list {
		result = append(result, evaluationapimodels.EvaluationShortConvert(rec))
	}
	return result, nil
}

func (i impl) ListRecords(filter evaluationapimodels.ListFilter) ([]dbmodels.Evaluation, error) {
	list, err := i.Store.List(filter)
	if err != nil {
		return nil, workflow.TransportError(err, "failed to load evaluations")
	}
	return list, nil
}

func (i impl) Stats() (evaluationapimodels.Stats, error) {
	counts, err := i.Store.CountByStatus()
	if err != nil {
		return evaluationapimodels.Stats{}, workflow.TransportError(err, "failed to load statistics")
	}
	stats := evaluationapimodels.Stats{}
	for status, count := range counts {
		stats.Add(status, count)
	}
	return stats, nil
}

func (i impl) GetByID(session form.Session, id string) (*dbmodels.Evaluation, error) {
	if !session.AllowsRecord(id) {
		return nil, workflow.AuthorizationError("access link does not allow this evaluation")
	}
	rec, err := i.Store.GetByID(id)
	if err != nil {
		return nil, workflow.TransportError(err, "failed to load evaluation")
	}
	if rec == nil {
		return nil, workflow.NotFoundError("evaluation not found")
	}
	return rec, nil
}

func (i impl) History(session form.Session, id string) ([]dbmodels.EvaluationHistory, error) {
	if _, err := i.GetByID(session, id); err != nil {
		return nil, err
	}
	list, err := i.HistoryStore.List(id)
	if err != nil {
		return nil, workflow.TransportError(err, "failed to load history")
	}
	return list, nil
}

func (i impl) Delete(ctx context.Context, session form.Session, id string) error {
	if session.IsGuest {
		return workflow.AuthorizationError("access link does not allow deleting")
	}
	rec, err := i.GetByID(session, id)
	if err != nil {
		return err
	}
	if !lock.TryLock(lockKey(id)) {
		return workflow.BusyError("evaluation is being saved")
	}
	defer lock.Unlock(lockKey(id))
	err = i.Store.Delete(id)
	if err != nil {
		return workflow.TransportError(err, "failed to delete evaluation")
	}
	i.writeHistory(session, *rec, rec.StatusSnapshot, rec.StatusSnapshot, models.HistoryActionDelete, nil)
	i.Hub.Broadcast(wsmodels.ServerMessage{
		Code:         wsmodels.EvaluationDeletedEvent,
		EvaluationID: id,
		EmployeeName: rec.EmployeeName,
	})
	i.getLogger(session, id).Info("оценка удалена")
	return nil
}

// Load - загрузка или создание (id == "") рабочей формы
func (i impl) Load(session form.Session, id string) (*form.Form, error) {
	if id == "" {
		if session.IsGuest {
			return nil, workflow.AuthorizationError("access link does not allow creating evaluations")
		}
		return form.New(session, nil), nil
	}
	rec, err := i.GetByID(session, id)
	if err != nil {
		return nil, err
	}
	return form.New(session, rec), nil
}

func lockKey(id string) string {
	return "evaluation:" + id
}

func (i impl) Save(ctx context.Context, f *form.Form) (result evaluationapimodels.SaveResult, err error) {
	session := f.Session()
	from := f.PersistedStatus()
	isNew := f.IsNew()
	snapshot, err := f.BeginSave(i.now())
	if err != nil {
		return result, err
	}
	logger := i.getLogger(session, snapshot.ID)
	if !lock.TryLock(lockKey(snapshot.ID)) {
		f.EndSave(nil)
		return result, workflow.BusyError("evaluation is being saved by another session")
	}
	err = i.Store.Save(snapshot)
	lock.Unlock(lockKey(snapshot.ID))
	if err != nil {
		f.EndSave(nil)
		logger.WithError(err).Error("ошибка сохранения оценки")
		return result, workflow.TransportError(err, "failed to save evaluation")
	}
	f.EndSave(snapshot)
	to := snapshot.Status()
	logger = logger.WithField("from_status", from).WithField("to_status", to)
	logger.Info("оценка сохранена")

	result.Evaluation = evaluationapimodels.EvaluationConvert(*snapshot)
	result.SessionClosed = f.Closed()

	if isNew || from != to {
		action := historyAction(from, to)
		if err := i.writeHistory(session, *snapshot, from, to, action, nil); err != nil {
			result.Warnings = append(result.Warnings, "history was not recorded")
		}
	}
	if to.IsAfter(from) {
		if warning := i.notify(ctx, *snapshot, from, to); warning != "" {
			logger.Warn(warning)
			result.Warnings = append(result.Warnings, warning)
		}
	}
	code := wsmodels.EvaluationSavedEvent
	if from != to {
		code = wsmodels.StatusChangedEvent
	}
	i.Hub.Broadcast(wsmodels.ServerMessage{
		Code:         code,
		EvaluationID: snapshot.ID,
		Status:       to,
		StatusHuman:  to.ToHuman(),
		EmployeeName: snapshot.EmployeeName,
	})
	if session.IsGuest && f.Closed() && session.LinkID != "" {
		if err := i.Links.Consume(session.LinkID); err != nil {
			logger.WithError(err).Warn("ссылка доступа не погашена")
			result.Warnings = append(result.Warnings, "access link was not invalidated")
		}
	}
	return result, nil
}

func historyAction(from, to models.EvaluationStatus) models.HistoryAction {
	switch {
	case to.IsAfter(from):
		return models.HistoryActionSign
	case to == models.EvaluationStatusDraft && from != models.EvaluationStatusDraft:
		return models.HistoryActionReset
	}
	return models.HistoryActionSave
}

func (i impl) writeHistory(session form.Session, rec dbmodels.Evaluation, from, to models.EvaluationStatus, action models.HistoryAction, changes []dbmodels.FieldChanges) error {
	if from != to {
		changes = append(changes, dbmodels.FieldChanges{Field: "status", OldValue: from, NewValue: to})
	}
	_, err := i.HistoryStore.Create(dbmodels.EvaluationHistory{
		EvaluationID: rec.ID,
		FromStatus:   from,
		ToStatus:     to,
		ActorRole:    session.Role,
		ActorName:    session.Actor(),
		Action:       action,
		Changes: dbmodels.EntityChanges{
			Description: fmt.Sprintf("%v: %v", action, rec.EmployeeName),
			Data:        changes,
		},
	})
	if err != nil {
		i.getLogger(session, rec.ID).WithError(err).Error("ошибка записи истории")
	}
	return err
}

// notify возвращает текст предупреждения, если письмо не ушло. Сохранение при этом не откатывается.
func (i impl) notify(ctx context.Context, rec dbmodels.Evaluation, from, to models.EvaluationStatus) string {
	notifySettings, err := i.Settings.NotifySettings()
	if err != nil {
		return "notification was not sent: settings are unavailable"
	}
	err = i.Notifier.NotifyTransition(ctx, notifySettings, rec, from, to)
	if err != nil {
		return "notification was not sent: " + err.Error()
	}
	return ""
}

// merge применяет правки через политику доступа, запрещенные поля пропускаются и возвращаются списком
// Если не применилось ни одно поле, возвращается AuthorizationError.
func merge(f *form.Form, data evaluationapimodels.EvaluationData) (ignored []string, err error) {
	applied := 0
	apply := func(field form.Field, fn func() error) error {
		err := fn()
		if workflow.IsKind(err, workflow.KindAuthorization) {
			ignored = append(ignored, string(field))
			return nil
		}
		if err == nil {
			applied++
		}
		return err
	}
	text := []struct {
		field form.Field
		value *string
	}{
		{form.FieldEmployeeName, data.EmployeeName},
		{form.FieldEmployeeID, data.EmployeeID},
		{form.FieldPosition, data.Position},
		{form.FieldSection, data.Section},
		{form.FieldDepartment, data.Department},
		{form.FieldStartDate, data.StartDate},
		{form.FieldDueProbationDate, data.DueProbationDate},
		{form.FieldHrOpinion, data.HrOpinion},
		{form.FieldApproverOpinion, data.ApproverOpinion},
	}
	for _, item := range text {
		if item.value == nil {
			continue
		}
		value := *item.value
		if err := apply(item.field, func() error { return f.ApplyField(item.field, value) }); err != nil {
			return nil, err
		}
	}
	if data.Attendance != nil {
		if err := apply(form.FieldAttendance, func() error { return f.SetAttendance(data.Attendance.ToDB()) }); err != nil {
			return nil, err
		}
	}
	if data.Opinion != nil {
		if err := apply(form.FieldOpinion, func() error { return f.SetOpinion(data.Opinion.Kind(), data.Opinion.Text()) }); err != nil {
			return nil, err
		}
	}
	if len(data.Ratings) > 0 {
		err := apply(form.FieldRatings, func() error {
			for topicID, rating := range data.Ratings {
				var err error
				if rating == 0 {
					_, err = f.ClearRating(topicID)
				} else {
					_, err = f.SetRating(topicID, rating)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if applied == 0 && len(ignored) > 0 {
		return ignored, workflow.AuthorizationError("%v cannot edit this evaluation at its current stage", f.Session().Role.ToHuman())
	}
	return ignored, nil
}

func (i impl) Edit(ctx context.Context, session form.Session, id string, data evaluationapimodels.EvaluationData) (evaluationapimodels.SaveResult, error) {
	if err := data.Validate(); err != nil {
		return evaluationapimodels.SaveResult{}, workflow.ValidationError("%v", workflow.HumanMessageOr(err))
	}
	f, err := i.Load(session, id)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	if data.DirectoryID != nil {
		if err = i.selectEmployee(f, *data.DirectoryID); err != nil {
			return evaluationapimodels.SaveResult{}, err
		}
	}
	ignored, err := merge(f, data)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	if len(ignored) > 0 {
		i.getLogger(session, id).WithField("ignored_fields", ignored).Debug("часть полей недоступна для роли")
	}
	result, err := i.Save(ctx, f)
	if err != nil {
		return result, err
	}
	result.IgnoredFields = ignored
	return result, nil
}

// selectEmployee - поля, переданные в запросе явно, применяются после копирования из справочника
func (i impl) selectEmployee(f *form.Form, employeeID string) error {
	if i.Employees == nil {
		return workflow.ValidationError("employee directory is unavailable")
	}
	entry, err := i.Employees.Get(employeeID)
	if err != nil {
		return err
	}
	return f.SelectEmployee(*entry)
}

func (i impl) CheckSign(session form.Session, id string, target models.UserRole) error {
	f, err := i.Load(session, id)
	if err != nil {
		return err
	}
	_, err = f.OpenSignature(target)
	return err
}

func (i impl) Sign(ctx context.Context, session form.Session, id string, target models.UserRole, data evaluationapimodels.SignRequest) (evaluationapimodels.SaveResult, error) {
	if err := data.Validate(); err != nil {
		return evaluationapimodels.SaveResult{}, workflow.ValidationError("%v", workflow.HumanMessageOr(err))
	}
	f, err := i.Load(session, id)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	var ignored []string
	if data.Data != nil {
		ignored, err = merge(f, *data.Data)
		if err != nil {
			return evaluationapimodels.SaveResult{}, err
		}
	}
	capture, err := f.OpenSignature(target)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	err = f.ConfirmSignature(capture, data.Signature)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	result, err := i.Save(ctx, f)
	if err != nil {
		return result, err
	}
	result.IgnoredFields = ignored
	return result, nil
}

// RequestReset - первый шаг сброса, выдает токен подтверждения
func (i impl) RequestReset(session form.Session, id string) (evaluationapimodels.ResetRequestView, error) {
	f, err := i.Load(session, id)
	if err != nil {
		return evaluationapimodels.ResetRequestView{}, err
	}
	if _, err = f.RequestReset(); err != nil {
		return evaluationapimodels.ResetRequestView{}, err
	}
	expiresAt := i.now().Add(i.ResetTTL)
	token, err := authutils.SignClaims(i.ResetSecret, jwt.MapClaims{
		"sub":  id,
		"role": string(session.Role),
		"typ":  authutils.TokenTypeReset,
		"exp":  expiresAt.Unix(),
		"iat":  i.now().Unix(),
	})
	if err != nil {
		return evaluationapimodels.ResetRequestView{}, errors.Wrap(err, "ошибка подписи токена сброса")
	}
	return evaluationapimodels.ResetRequestView{Token: token, ExpiresAt: expiresAt}, nil
}

func (i impl) ConfirmReset(ctx context.Context, session form.Session, id, token string) (evaluationapimodels.SaveResult, error) {
	claims, err := authutils.ParseClaims(i.ResetSecret, token, authutils.TokenTypeReset)
	if err != nil {
		return evaluationapimodels.SaveResult{}, workflow.ValidationError("reset confirmation is invalid or expired")
	}
	if sub, _ := claims["sub"].(string); sub != id {
		return evaluationapimodels.SaveResult{}, workflow.ValidationError("reset confirmation does not match the evaluation")
	}
	if role, _ := claims["role"].(string); role != string(session.Role) {
		return evaluationapimodels.SaveResult{}, workflow.AuthorizationError("reset confirmation was issued for another role")
	}
	f, err := i.Load(session, id)
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	confirmation, err := f.RequestReset()
	if err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	if err = f.ConfirmReset(confirmation); err != nil {
		return evaluationapimodels.SaveResult{}, err
	}
	i.getLogger(session, id).Info("оценка сброшена в черновик")
	return i.Save(ctx, f)
}

func (i impl) IssueLink(session form.Session, id string, role models.UserRole) (evaluationapimodels.AccessLinkView, error) {
	if session.IsGuest {
		return evaluationapimodels.AccessLinkView{}, workflow.AuthorizationError("access link does not allow issuing links")
	}
	if !canIssueLink(session.Role, role) {
		return evaluationapimodels.AccessLinkView{}, workflow.AuthorizationError("you may not issue a link for %v", role.ToHuman())
	}
	if _, err := i.GetByID(session, id); err != nil {
		return evaluationapimodels.AccessLinkView{}, err
	}
	i.getLogger(session, id).WithField("link_role", role).Info("выдана ссылка доступа")
	return i.Links.Issue(id, role)
}

// canIssueLink - admin выдает ссылку любой роли, остальные только на свою
func canIssueLink(issuer, role models.UserRole) bool {
	return issuer == models.RoleAdmin || issuer == role
}
