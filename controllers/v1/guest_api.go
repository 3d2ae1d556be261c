package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	evaluationhandler "probation-eval-backend/lib/evaluation"
	"probation-eval-backend/middleware"
	apimodels "probation-eval-backend/models/api"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
)

type guestApiController struct {
	controllers.BaseAPIController
}

// InitGuestApiRouters - маршруты по ссылке доступа, запись и роль берутся из токена ссылки
func InitGuestApiRouters(app fiber.Router) {
	controller := guestApiController{}
	app.Route("guest", func(router fiber.Router) {
		router.Use(middleware.GuestRequired())
		router.Get("evaluation", controller.get)
		router.Put("evaluation", controller.update)
		router.Get("evaluation/sign", controller.checkSign)
		router.Post("evaluation/sign", controller.sign)
	})
}

// @Summary Оценка по ссылке
// @Tags Доступ по ссылке
// @Description Запись, на которую выдана ссылка
// @Param   X-Access-Token		header		string	true	"access link token"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.EvaluationView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/guest/evaluation [get]
func (c *guestApiController) get(ctx *fiber.Ctx) error {
	session := middleware.GetGuestSession(ctx)
	rec, err := evaluationhandler.Instance.GetByID(session, session.EvaluationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(evaluationapimodels.EvaluationConvert(*rec)))
}

// @Summary Изменение по ссылке
// @Tags Доступ по ссылке
// @Description Изменение раздела своей роли, после сохранения ссылка погашается
// @Param   X-Access-Token		header		string	true	"access link token"
// @Param	body body	 evaluationapimodels.EvaluationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/guest/evaluation [put]
func (c *guestApiController) update(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.EvaluationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	session := middleware.GetGuestSession(ctx)
	res, err := evaluationhandler.Instance.Edit(ctx.UserContext(), session, session.EvaluationID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Проверка подписи по ссылке
// @Tags Доступ по ссылке
// @Description Можно ли открыть окно подписи роли ссылки
// @Param   X-Access-Token		header		string	true	"access link token"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SignCheckView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/guest/evaluation/sign [get]
func (c *guestApiController) checkSign(ctx *fiber.Ctx) error {
	session := middleware.GetGuestSession(ctx)
	err := evaluationhandler.Instance.CheckSign(session, session.EvaluationID, session.Role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки подписи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(evaluationapimodels.SignCheckView{Allowed: true}))
}

// @Summary Подпись по ссылке
// @Tags Доступ по ссылке
// @Description Подпись роли ссылки, после сохранения ссылка погашается
// @Param   X-Access-Token		header		string	true	"access link token"
// @Param	body body	 evaluationapimodels.SignRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/guest/evaluation/sign [post]
func (c *guestApiController) sign(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.SignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	session := middleware.GetGuestSession(ctx)
	res, err := evaluationhandler.Instance.Sign(ctx.UserContext(), session, session.EvaluationID, session.Role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подписи оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}
