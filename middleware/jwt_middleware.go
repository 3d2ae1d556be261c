package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"probation-eval-backend/config"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	apimodels "probation-eval-backend/models/api"
)

// AuthorizationRequired - только токен сессии сотрудника, ссылки доступа и токены сброса сюда не подходят
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		// браузер не передает заголовки при подключении к websocket
		TokenLookup: "header:Authorization,query:auth_token",
		Claims:      jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			claims := authutils.GetClaims(ctx)
			if typ, _ := claims["typ"].(string); typ != authutils.TokenTypeSession {
				return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("invalid session token"))
			}
			if !authutils.GetUserRole(ctx).IsValid() {
				return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("unknown role"))
			}
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("session is missing or expired"))
		},
	})
}
