package rbac

import (
	"probation-eval-backend/models"
)

var (
	AdminRoleSet         = []models.UserRole{models.RoleAdmin}
	AdminAssessorRoleSet = []models.UserRole{models.RoleAdmin, models.RoleAssessor}
	AllRoles             = []models.UserRole{models.RoleAdmin, models.RoleAssessor, models.RoleHR, models.RoleApprover}
)

func (i *impl) initRules() {
	i.evaluation()
	i.employee()
	i.settings()
}

// доступ к этапам подписи дополнительно проверяет workflow, здесь только грубое разделение по ролям
func (i *impl) evaluation() {
	// VIEW
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation/stats [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation/export [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation/{id} [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation/{id}/history [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/evaluation/{id}/print [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/ws [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.ViewPermission, AllRoles, "/api/v1/exec [post]", nil)
	// CREATE/EDIT
	i.RegisterRule(models.EvaluationModule, models.CreatePermission, AdminAssessorRoleSet, "/api/v1/evaluation [post]", nil)
	i.RegisterRule(models.EvaluationModule, models.EditPermission, AllRoles, "/api/v1/evaluation/{id} [put]", nil)
	i.RegisterRule(models.EvaluationModule, models.ManagePermission, AdminRoleSet, "/api/v1/evaluation/{id} [delete]", nil)
	// FLOW
	i.RegisterRule(models.EvaluationModule, models.FlowPermission, AllRoles, "/api/v1/evaluation/{id}/sign/{role} [get]", nil)
	i.RegisterRule(models.EvaluationModule, models.FlowPermission, AllRoles, "/api/v1/evaluation/{id}/sign/{role} [post]", nil)
	i.RegisterRule(models.EvaluationModule, models.FlowPermission, AdminAssessorRoleSet, "/api/v1/evaluation/{id}/reset [post]", nil)
	i.RegisterRule(models.EvaluationModule, models.FlowPermission, AdminAssessorRoleSet, "/api/v1/evaluation/{id}/reset [put]", nil)
	i.RegisterRule(models.EvaluationModule, models.FlowPermission, AllRoles, "/api/v1/evaluation/{id}/link/{role} [post]", nil)
}

func (i *impl) employee() {
	i.RegisterRule(models.EmployeeModule, models.ViewPermission, AllRoles, "/api/v1/employee [get]", nil)
	i.RegisterRule(models.EmployeeModule, models.ManagePermission, AdminRoleSet, "/api/v1/employee [post]", nil)
	i.RegisterRule(models.EmployeeModule, models.ManagePermission, AdminRoleSet, "/api/v1/employee/{id} [delete]", nil)
	i.RegisterRule(models.EmployeeModule, models.ManagePermission, AdminRoleSet, "/api/v1/sheet [post]", nil)
	i.RegisterRule(models.EmployeeModule, models.ManagePermission, AdminRoleSet, "/api/v1/sheet/preview [post]", nil)
	i.RegisterRule(models.EmployeeModule, models.ManagePermission, AdminRoleSet, "/api/v1/sheet/import [post]", nil)
}

func (i *impl) settings() {
	i.RegisterRule(models.SettingsModule, models.ViewPermission, AllRoles, "/api/v1/settings [get]", nil)
	i.RegisterRule(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/settings [put]", nil)
}
