package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/lib/rbac"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	apimodels "probation-eval-backend/models/api"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userName := authutils.GetUserID(ctx)
		userRole := authutils.GetUserRole(ctx)
		if userName == "" || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		if !rbac.Instance.Check(ctx.Method(), ctx.Path(), userName, userRole) {
			log.
				WithField("user", userName).
				WithField("role", userRole).
				WithField("path", ctx.Path()).
				Warn("доступ запрещен по роли")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		return ctx.Next()
	}
}
