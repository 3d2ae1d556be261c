package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"probation-eval-backend/controllers"
	sheetimport "probation-eval-backend/lib/sheet-import"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	apimodels "probation-eval-backend/models/api"
	sheetapimodels "probation-eval-backend/models/api/sheet"
)

type sheetApiController struct {
	controllers.BaseAPIController
}

func InitSheetApiRouters(app fiber.Router) {
	controller := sheetApiController{}
	app.Route("sheet", func(router fiber.Router) {
		router.Post("", controller.upload)
		router.Post("preview", controller.preview)
		router.Post("import", controller.importSheet)
	})
}

// @Summary Загрузка выгрузки HR системы
// @Tags Загрузка сотрудников
// @Description Загрузка xlsx файла со списком сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file	true	"xlsx file"
// @Success 200 {object} apimodels.Response{data=sheetapimodels.UploadView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sheet [post]
func (c *sheetApiController) upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.SendBadRequest(ctx, errors.New("file is missing"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendBadRequest(ctx, errors.New("failed to read file"))
	}
	defer file.Close()

	resp, err := sheetimport.Instance.Upload(ctx.UserContext(), fileHeader.Filename, file, fileHeader.Size, authutils.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Просмотр листа
// @Tags Загрузка сотрудников
// @Description Заголовки и строки листа загруженного файла
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 sheetapimodels.PreviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=sheetapimodels.PreviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sheet/preview [post]
func (c *sheetApiController) preview(ctx *fiber.Ctx) error {
	var payload sheetapimodels.PreviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := sheetimport.Instance.Preview(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Импорт сотрудников
// @Tags Загрузка сотрудников
// @Description Загрузка сотрудников из листа по соответствию колонок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 sheetapimodels.ImportRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=sheetapimodels.ImportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sheet/import [post]
func (c *sheetApiController) importSheet(ctx *fiber.Ctx) error {
	var payload sheetapimodels.ImportRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := sheetimport.Instance.Import(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка импорта сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
