package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	"probation-eval-backend/lib/action"
	"probation-eval-backend/middleware"
	apimodels "probation-eval-backend/models/api"
	actionapimodels "probation-eval-backend/models/api/action"
)

type execApiController struct {
	controllers.BaseAPIController
}

func InitExecApiRouters(app fiber.Router) {
	controller := execApiController{}
	app.Post("exec", controller.exec)
}

// @Summary Выполнение действия
// @Tags Действия
// @Description Вызов действия по имени, права проверяются как для соответствующего маршрута
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 actionapimodels.Request	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/exec [post]
func (c *execApiController) exec(ctx *fiber.Ctx) error {
	var payload actionapimodels.Request
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := action.Instance.Exec(ctx.UserContext(), middleware.GetStaffSession(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("action", payload.Action), err, "Ошибка выполнения действия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
