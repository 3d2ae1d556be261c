package db

import (
	log "github.com/sirupsen/logrus"
	settingsstore "probation-eval-backend/lib/settings/store"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

// InitPreload - предзаполнение настроек значениями из конфига при первом запуске
func InitPreload(defaults models.NotifySettings) {
	fillSettings(defaults)
}

func fillSettings(defaults models.NotifySettings) {
	store := settingsstore.NewInstance(DB)
	existed, err := store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения настроек")
		return
	}
	if len(existed) != 0 {
		return
	}
	log.Info("предзаполнение дефолтных настроек")
	if err = store.Upsert(defaultSettings(defaults)); err != nil {
		log.WithError(err).Error("ошибка предзаполнения настроек")
	}
}

func defaultSettings(defaults models.NotifySettings) []dbmodels.Setting {
	list := []dbmodels.Setting{
		{Code: models.HRRecipientsSetting, Values: defaults.HRRecipients},
		{Code: models.ApproverRecipientsSetting, Values: defaults.ApproverRecipients},
		{Code: models.CompletionRecipientsSetting, Values: defaults.CompletionRecipients},
		{Code: models.SenderNameSetting, Value: defaults.SenderName},
	}
	for role, code := range models.RoleTitleSettingCodes {
		list = append(list, dbmodels.Setting{Code: code, Value: defaults.RoleTitles[role]})
	}
	return list
}
