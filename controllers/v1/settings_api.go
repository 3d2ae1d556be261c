package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	"probation-eval-backend/lib/settings"
	apimodels "probation-eval-backend/models/api"
	settingsapimodels "probation-eval-backend/models/api/settings"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app fiber.Router) {
	controller := settingsApiController{}
	app.Route("settings", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", controller.update)
	})
}

// @Summary Настройки
// @Tags Настройки
// @Description Названия ролей и получатели уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.Settings}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) get(ctx *fiber.Ctx) error {
	resp, err := settings.Instance.Get()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения настроек")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение настроек
// @Tags Настройки
// @Description Изменение названий ролей и получателей уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 settingsapimodels.Settings	true	"request body"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.Settings}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [put]
func (c *settingsApiController) update(ctx *fiber.Ctx) error {
	var payload settingsapimodels.Settings
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := settings.Instance.Save(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения настроек")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
