package models

type RbacFunc func(userName string, role UserRole, path string) bool

type Module string

const (
	EvaluationModule Module = "EVALUATION"
	EmployeeModule   Module = "EMPLOYEE"
	SettingsModule   Module = "SETTINGS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)
