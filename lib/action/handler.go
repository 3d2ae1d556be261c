package action

import (
	"context"

	log "github.com/sirupsen/logrus"
	"probation-eval-backend/lib/employee"
	evaluationhandler "probation-eval-backend/lib/evaluation"
	"probation-eval-backend/lib/evaluation/form"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/lib/notify"
	"probation-eval-backend/lib/rbac"
	"probation-eval-backend/lib/settings"
	sheetimport "probation-eval-backend/lib/sheet-import"
	actionapimodels "probation-eval-backend/models/api/action"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	sheetapimodels "probation-eval-backend/models/api/sheet"
)

// Provider - вызов действий по имени, каждое действие проверяется по правилу соответствующего REST маршрута
type Provider interface {
	Exec(ctx context.Context, session form.Session, req actionapimodels.Request) (any, error)
}

var Instance Provider

type Deps struct {
	Rbac        rbac.Provider
	Evaluations evaluationhandler.Provider
	Employees   employee.Provider
	Settings    settings.Provider
	Sheets      sheetimport.Provider
	Notifier    notify.Provider
}

func NewHandler(deps Deps) {
	Instance = NewInstance(deps)
}

func NewInstance(deps Deps) Provider {
	return &impl{deps: deps}
}

type impl struct {
	deps Deps
}

type route struct {
	method string
	path   string
}

func routeOf(req actionapimodels.Request) route {
	switch req.Action {
	case actionapimodels.GetEvaluations:
		return route{"GET", "/api/v1/evaluation"}
	case actionapimodels.GetEvaluationByID:
		return route{"GET", "/api/v1/evaluation/" + req.ID}
	case actionapimodels.SaveEvaluation:
		if req.ID == "" {
			return route{"POST", "/api/v1/evaluation"}
		}
		return route{"PUT", "/api/v1/evaluation/" + req.ID}
	case actionapimodels.DeleteEvaluation:
		return route{"DELETE", "/api/v1/evaluation/" + req.ID}
	case actionapimodels.GetEmployees:
		return route{"GET", "/api/v1/employee"}
	case actionapimodels.SyncEmployees:
		return route{"POST", "/api/v1/employee"}
	case actionapimodels.DeleteEmployee:
		return route{"DELETE", "/api/v1/employee/" + req.ID}
	case actionapimodels.GetSettings:
		return route{"GET", "/api/v1/settings"}
	case actionapimodels.SaveSettings:
		return route{"PUT", "/api/v1/settings"}
	case actionapimodels.PreviewSheet:
		return route{"POST", "/api/v1/sheet/preview"}
	case actionapimodels.SendEmail:
		// своего маршрута нет, письма рассылает тот, кто управляет получателями
		return route{"PUT", "/api/v1/settings"}
	}
	return route{}
}

func (i impl) Exec(ctx context.Context, session form.Session, req actionapimodels.Request) (any, error) {
	if err := req.Validate(); err != nil {
		return nil, workflow.ValidationError("%v", err)
	}
	r := routeOf(req)
	if !i.deps.Rbac.Check(r.method, r.path, session.UserName, session.Role) {
		return nil, workflow.AuthorizationError("action %v is not allowed for role %v", req.Action, session.Role)
	}
	logger := log.
		WithField("action", req.Action).
		WithField("user", session.Actor())
	logger.Debug("выполнение действия")

	switch req.Action {
	case actionapimodels.GetEvaluations:
		return i.deps.Evaluations.List(evaluationapimodels.ListFilter{})
	case actionapimodels.GetEvaluationByID:
		rec, err := i.deps.Evaluations.GetByID(session, req.ID)
		if err != nil {
			return nil, err
		}
		return evaluationapimodels.EvaluationConvert(*rec), nil
	case actionapimodels.SaveEvaluation:
		return i.deps.Evaluations.Edit(ctx, session, req.ID, *req.Record)
	case actionapimodels.DeleteEvaluation:
		return nil, i.deps.Evaluations.Delete(ctx, session, req.ID)
	case actionapimodels.GetEmployees:
		return i.deps.Employees.List("")
	case actionapimodels.SyncEmployees:
		return nil, i.deps.Employees.Sync(*req.Employee)
	case actionapimodels.DeleteEmployee:
		return nil, i.deps.Employees.Delete(req.ID)
	case actionapimodels.GetSettings:
		return i.deps.Settings.Get()
	case actionapimodels.SaveSettings:
		return i.deps.Settings.Save(*req.Settings)
	case actionapimodels.PreviewSheet:
		return i.deps.Sheets.Preview(ctx, sheetapimodels.PreviewRequest{SheetID: req.SheetID, SheetName: req.SheetName})
	case actionapimodels.SendEmail:
		err := i.deps.Notifier.SendEmail(ctx, req.Email.To, req.Email.Subject, req.Email.HTML, req.Email.Link)
		if err != nil {
			return nil, workflow.TransportError(err, "email was not sent")
		}
		return nil, nil
	}
	return nil, workflow.ValidationError("unknown action: %v", req.Action)
}
