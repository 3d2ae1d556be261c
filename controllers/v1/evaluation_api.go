package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	evaluationhandler "probation-eval-backend/lib/evaluation"
	pdfexport "probation-eval-backend/lib/export/pdf"
	xlsexport "probation-eval-backend/lib/export/xls"
	"probation-eval-backend/middleware"
	"probation-eval-backend/models"
	apimodels "probation-eval-backend/models/api"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
)

type evaluationApiController struct {
	controllers.BaseAPIController
}

func InitEvaluationApiRouters(app fiber.Router) {
	controller := evaluationApiController{}
	app.Route("evaluation", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("stats", controller.stats)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Get("history", controller.history)
			idRoute.Get("print", controller.print)
			idRoute.Get("sign/:role", controller.checkSign)
			idRoute.Post("sign/:role", controller.sign)
			idRoute.Post("reset", controller.resetRequest)
			idRoute.Put("reset", controller.resetConfirm)
			idRoute.Post("link/:role", controller.issueLink)
		})
	})
}

// @Summary Список оценок
// @Tags Оценка
// @Description Список оценок с фильтром по статусу и поиском по имени и табельному номеру
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status				query		string	false	"status"
// @Param   search				query		string	false	"search"
// @Success 200 {object} apimodels.Response{data=[]evaluationapimodels.EvaluationShortView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation [get]
func (c *evaluationApiController) list(ctx *fiber.Ctx) error {
	var filter evaluationapimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := filter.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := evaluationhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка оценок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Статистика
// @Tags Оценка
// @Description Количество оценок по статусам
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.Stats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/stats [get]
func (c *evaluationApiController) stats(ctx *fiber.Ctx) error {
	stats, err := evaluationhandler.Instance.Stats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(stats))
}

// @Summary Выгрузка в xlsx
// @Tags Оценка
// @Description Выгрузка списка оценок в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status				query		string	false	"status"
// @Param   search				query		string	false	"search"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/export [get]
func (c *evaluationApiController) export(ctx *fiber.Ctx) error {
	var filter evaluationapimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := filter.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := evaluationhandler.Instance.ListRecords(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка оценок")
	}
	buf, err := xlsexport.Instance.ExportEvaluationList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования файла")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="evaluations_%v.xlsx"`, time.Now().Format("20060102")))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Создание
// @Tags Оценка
// @Description Создание и первое сохранение оценки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 evaluationapimodels.EvaluationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/evaluation [post]
func (c *evaluationApiController) create(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.EvaluationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	res, err := evaluationhandler.Instance.Edit(ctx.UserContext(), middleware.GetStaffSession(ctx), "", payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Получение по ИД
// @Tags Оценка
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.EvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/evaluation/{id} [get]
func (c *evaluationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := evaluationhandler.Instance.GetByID(middleware.GetStaffSession(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(evaluationapimodels.EvaluationConvert(*rec)))
}

// @Summary Изменение
// @Tags Оценка
// @Description Изменение полей, недоступные роли поля пропускаются и возвращаются в ignored_fields
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 evaluationapimodels.EvaluationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/evaluation/{id} [put]
func (c *evaluationApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload evaluationapimodels.EvaluationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	res, err := evaluationhandler.Instance.Edit(ctx.UserContext(), middleware.GetStaffSession(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Удаление
// @Tags Оценка
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/evaluation/{id} [delete]
func (c *evaluationApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	err = evaluationhandler.Instance.Delete(ctx.UserContext(), middleware.GetStaffSession(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История
// @Tags Оценка
// @Description Журнал сохранений и смен статуса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.EvaluationHistory}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/history [get]
func (c *evaluationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := evaluationhandler.Instance.History(middleware.GetStaffSession(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Печатная форма
// @Tags Оценка
// @Description Печатная форма оценки в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/print [get]
func (c *evaluationApiController) print(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := evaluationhandler.Instance.GetByID(middleware.GetStaffSession(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки")
	}
	file, err := pdfexport.Instance.EvaluationForm(*rec, time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования печатной формы")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="evaluation_%v.pdf"`, rec.EmployeeID))
	return ctx.Status(fiber.StatusOK).Send(file)
}

// @Summary Проверка подписи
// @Tags Оценка
// @Description Можно ли открыть окно подписи для роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   role          		path    string  				    	true         "assessor|hr|approver"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SignCheckView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/sign/{role} [get]
func (c *evaluationApiController) checkSign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	target := models.UserRole(ctx.Params("role"))
	err = evaluationhandler.Instance.CheckSign(middleware.GetStaffSession(ctx), id, target)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки подписи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(evaluationapimodels.SignCheckView{Allowed: true}))
}

// @Summary Подпись
// @Tags Оценка
// @Description Подпись роли, вместе с подписью можно передать правки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   role          		path    string  				    	true         "assessor|hr|approver"
// @Param	body body	 evaluationapimodels.SignRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/sign/{role} [post]
func (c *evaluationApiController) sign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload evaluationapimodels.SignRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	target := models.UserRole(ctx.Params("role"))
	res, err := evaluationhandler.Instance.Sign(ctx.UserContext(), middleware.GetStaffSession(ctx), id, target, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подписи оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Запрос сброса
// @Tags Оценка
// @Description Первый шаг сброса в черновик, возвращает токен подтверждения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.ResetRequestView}
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/reset [post]
func (c *evaluationApiController) resetRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	res, err := evaluationhandler.Instance.RequestReset(middleware.GetStaffSession(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запроса сброса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Подтверждение сброса
// @Tags Оценка
// @Description Второй шаг сброса: снимает все подписи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 evaluationapimodels.ResetConfirmRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SaveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/reset [put]
func (c *evaluationApiController) resetConfirm(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload evaluationapimodels.ResetConfirmRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	res, err := evaluationhandler.Instance.ConfirmReset(ctx.UserContext(), middleware.GetStaffSession(ctx), id, payload.Token)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сброса оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}

// @Summary Ссылка доступа
// @Tags Оценка
// @Description Одноразовая ссылка для подписи без входа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   role          		path    string  				    	true         "assessor|hr|approver"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.AccessLinkView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/evaluation/{id}/link/{role} [post]
func (c *evaluationApiController) issueLink(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	res, err := evaluationhandler.Instance.IssueLink(middleware.GetStaffSession(ctx), id, models.UserRole(ctx.Params("role")))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выдачи ссылки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(res))
}
