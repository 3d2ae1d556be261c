package models

type SettingCode string

const (
	RoleTitleAssessorSetting    SettingCode = "role_title_assessor"
	RoleTitleHRSetting          SettingCode = "role_title_hr"
	RoleTitleApproverSetting    SettingCode = "role_title_approver"
	HRRecipientsSetting         SettingCode = "hr_recipients"         // кому уходит письмо на подпись HR
	ApproverRecipientsSetting   SettingCode = "approver_recipients"   // кому уходит письмо на утверждение
	CompletionRecipientsSetting SettingCode = "completion_recipients" // уведомление о завершении
	SenderNameSetting           SettingCode = "sender_name"
)

// NotifySettings - настройки ролей и адресатов, передаются в слой уведомлений явно
type NotifySettings struct {
	RoleTitles           map[UserRole]string
	HRRecipients         []string
	ApproverRecipients   []string
	CompletionRecipients []string
	SenderName           string
}

func (s NotifySettings) RoleTitle(role UserRole) string {
	if title, ok := s.RoleTitles[role]; ok && title != "" {
		return title
	}
	return role.ToHuman()
}

func (s NotifySettings) RecipientsFor(status EvaluationStatus) []string {
	switch status {
	case EvaluationStatusPendingHR:
		return s.HRRecipients
	case EvaluationStatusPendingApproval:
		return s.ApproverRecipients
	case EvaluationStatusCompleted:
		return s.CompletionRecipients
	}
	return nil
}

var RoleTitleSettingCodes = map[UserRole]SettingCode{
	RoleAssessor: RoleTitleAssessorSetting,
	RoleHR:       RoleTitleHRSetting,
	RoleApprover: RoleTitleApproverSetting,
}
