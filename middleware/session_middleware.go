package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	accesslink "probation-eval-backend/lib/access-link"
	"probation-eval-backend/lib/evaluation/form"
	"probation-eval-backend/lib/evaluation/workflow"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	apimodels "probation-eval-backend/models/api"
)

const (
	AccessTokenHeader = "X-Access-Token"
	guestClaimsKey    = "guest_claims"
)

// GuestRequired - сессия по ссылке доступа, токен в заголовке X-Access-Token или в параметре token
func GuestRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := strings.TrimSpace(ctx.Get(AccessTokenHeader))
		if token == "" {
			token = strings.TrimSpace(ctx.Query("token"))
		}
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("access link token is missing"))
		}
		claims, err := accesslink.Instance.Resolve(token)
		if err != nil {
			status := fiber.StatusForbidden
			if !workflow.IsKind(err, workflow.KindAuthorization) {
				status = fiber.StatusInternalServerError
			}
			return ctx.Status(status).JSON(apimodels.NewError(workflow.HumanMessageOr(err)))
		}
		ctx.Locals(guestClaimsKey, claims)
		return ctx.Next()
	}
}

func GetStaffSession(ctx *fiber.Ctx) form.Session {
	return form.Session{
		Role:     authutils.GetUserRole(ctx),
		UserName: authutils.GetUserName(ctx),
	}
}

func GetGuestSession(ctx *fiber.Ctx) form.Session {
	claims, ok := ctx.Locals(guestClaimsKey).(*accesslink.Claims)
	if !ok {
		return form.Session{IsGuest: true}
	}
	return form.Session{
		Role:         claims.Role,
		IsGuest:      true,
		EvaluationID: claims.EvaluationID,
		LinkID:       claims.LinkID,
	}
}
