package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	"probation-eval-backend/lib/employee"
	apimodels "probation-eval-backend/models/api"
	employeeapimodels "probation-eval-backend/models/api/employee"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app fiber.Router) {
	controller := employeeApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.sync)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Справочник сотрудников
// @Tags Сотрудники
// @Description Список сотрудников на испытательном сроке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search				query		string	false	"search"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	var filter employeeapimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := employee.Instance.List(filter.Search)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавление/изменение сотрудника
// @Tags Сотрудники
// @Description Запись по табельному номеру создается или обновляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee [post]
func (c *employeeApiController) sync(ctx *fiber.Ctx) error {
	var payload employeeapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := employee.Instance.Sync(payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление сотрудника
// @Tags Сотрудники
// @Description Удаление сотрудника из справочника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "employee ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/{id} [delete]
func (c *employeeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = employee.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
