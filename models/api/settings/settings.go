package settingsapimodels

import (
	"net/mail"

	"github.com/pkg/errors"
	"probation-eval-backend/models"
)

type Settings struct {
	RoleTitles           map[models.UserRole]string `json:"role_titles"`
	HRRecipients         []string                   `json:"hr_recipients"`
	ApproverRecipients   []string                   `json:"approver_recipients"`
	CompletionRecipients []string                   `json:"completion_recipients"`
	SenderName           string                     `json:"sender_name"`
}

func (s Settings) Validate() error {
	for role := range s.RoleTitles {
		if !role.IsValid() {
			return errors.Errorf("unknown role: %v", role)
		}
	}
	for _, list := range [][]string{s.HRRecipients, s.ApproverRecipients, s.CompletionRecipients} {
		for _, address := range list {
			if _, err := mail.ParseAddress(address); err != nil {
				return errors.Errorf("invalid email address: %v", address)
			}
		}
	}
	return nil
}

func (s Settings) ToNotify() models.NotifySettings {
	return models.NotifySettings{
		RoleTitles:           s.RoleTitles,
		HRRecipients:         s.HRRecipients,
		ApproverRecipients:   s.ApproverRecipients,
		CompletionRecipients: s.CompletionRecipients,
		SenderName:           s.SenderName,
	}
}
