package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"probation-eval-backend/controllers"
	"probation-eval-backend/lib/rbac"
	staffauth "probation-eval-backend/lib/staff-auth"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	"probation-eval-backend/middleware"
	apimodels "probation-eval-backend/models/api"
	authapimodels "probation-eval-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app fiber.Router) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Get("users", controller.users)
		router.Post("session", controller.session)
		router.Use(middleware.AuthorizationRequired()).Get("me", controller.me)
	})
}

// @Summary Список сотрудников с доступом
// @Tags Аутентификация пользователей
// @Description Пользователи, для которых можно открыть сессию
// @Success 200 {object} apimodels.Response{data=[]authapimodels.StaffUser}
// @router /api/v1/auth/users [get]
func (c *authApiController) users(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(staffauth.Instance.Users()))
}

// @Summary Открыть сессию
// @Tags Аутентификация пользователей
// @Description Выдает токен сессии для пользователя из списка
// @Param	body				body		authapimodels.SessionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/session [post]
func (c *authApiController) session(ctx *fiber.Ctx) error {
	var payload authapimodels.SessionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := staffauth.Instance.Session(payload.Username)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка открытия сессии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить информацию о текущем пользователе
// @Tags Аутентификация пользователей
// @Description Пользователь сессии и его права по модулям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.MeView}
// @Failure 401
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	role := authutils.GetUserRole(ctx)
	resp := authapimodels.MeView{
		User: authapimodels.StaffUser{
			Username: authutils.GetUserID(ctx),
			Name:     authutils.GetUserName(ctx),
			Role:     role,
		},
		Permissions: rbac.Instance.GetPermissions(role),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
