package settings

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	settingsstore "probation-eval-backend/lib/settings/store"
	"probation-eval-backend/lib/utils/helpers"
	"probation-eval-backend/models"
	settingsapimodels "probation-eval-backend/models/api/settings"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Get() (settingsapimodels.Settings, error)
	Save(data settingsapimodels.Settings) (settingsapimodels.Settings, error)
	NotifySettings() (models.NotifySettings, error)
}

var Instance Provider

func NewHandler(store settingsstore.Provider, defaults settingsapimodels.Settings) {
	Instance = NewInstance(store, defaults)
}

func NewInstance(store settingsstore.Provider, defaults settingsapimodels.Settings) Provider {
	return &impl{
		store:    store,
		defaults: defaults,
	}
}

type impl struct {
	store    settingsstore.Provider
	defaults settingsapimodels.Settings
}

// Get - значения из БД поверх значений из конфига
func (i impl) Get() (settingsapimodels.Settings, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения настроек")
		return settingsapimodels.Settings{}, errors.Wrap(err, "failed to load settings")
	}
	result := settingsapimodels.Settings{
		RoleTitles:           map[models.UserRole]string{},
		HRRecipients:         i.defaults.HRRecipients,
		ApproverRecipients:   i.defaults.ApproverRecipients,
		CompletionRecipients: i.defaults.CompletionRecipients,
		SenderName:           i.defaults.SenderName,
	}
	for role, title := range i.defaults.RoleTitles {
		result.RoleTitles[role] = title
	}
	for _, rec := range list {
		switch rec.Code {
		case models.HRRecipientsSetting:
			result.HRRecipients = rec.Values
		case models.ApproverRecipientsSetting:
			result.ApproverRecipients = rec.Values
		case models.CompletionRecipientsSetting:
			result.CompletionRecipients = rec.Values
		case models.SenderNameSetting:
			result.SenderName = rec.Value
		default:
			for role, code := range models.RoleTitleSettingCodes {
				if code == rec.Code && rec.Value != "" {
					result.RoleTitles[role] = rec.Value
				}
			}
		}
	}
	return result, nil
}

func (i impl) Save(data settingsapimodels.Settings) (settingsapimodels.Settings, error) {
	list := []dbmodels.Setting{
		{Code: models.HRRecipientsSetting, Values: dbmodels.Recipients(helpers.NormalizeEmails(data.HRRecipients))},
		{Code: models.ApproverRecipientsSetting, Values: dbmodels.Recipients(helpers.NormalizeEmails(data.ApproverRecipients))},
		{Code: models.CompletionRecipientsSetting, Values: dbmodels.Recipients(helpers.NormalizeEmails(data.CompletionRecipients))},
		{Code: models.SenderNameSetting, Value: data.SenderName},
	}
	for role, title := range data.RoleTitles {
		code, ok := models.RoleTitleSettingCodes[role]
		if !ok {
			continue
		}
		list = append(list, dbmodels.Setting{Code: code, Value: title})
	}
	err := i.store.Upsert(list)
	if err != nil {
		log.WithError(err).Error("ошибка сохранения настроек")
		return settingsapimodels.Settings{}, errors.Wrap(err, "failed to save settings")
	}
	return i.Get()
}

func (i impl) NotifySettings() (models.NotifySettings, error) {
	s, err := i.Get()
	if err != nil {
		return models.NotifySettings{}, err
	}
	return s.ToNotify(), nil
}
