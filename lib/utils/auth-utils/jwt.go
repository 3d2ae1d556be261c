package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"probation-eval-backend/config"
	"probation-eval-backend/models"
)

const (
	TokenTypeSession    = "session"
	TokenTypeAccessLink = "access_link"
	TokenTypeReset      = "reset"
)

// GetToken - токен сессии сотрудника
func GetToken(username, name string, role models.UserRole) (tokenString string, expiresAt time.Time, err error) {
	expiresAt = time.Now().Add(time.Second * time.Duration(config.Conf.Auth.SessionTTLInSec))
	claims := jwt.MapClaims{
		"name": name,
		"sub":  username,
		"role": string(role),
		"typ":  TokenTypeSession,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}
	tokenString, err = SignClaims(config.Conf.Auth.JWTSecret, claims)
	return tokenString, expiresAt, err
}

func SignClaims(secret string, claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClaims проверяет подпись, срок и тип токена
func ParseClaims(secret, tokenString, tokenType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return nil, errors.Errorf("unexpected token type: %v", claims["typ"])
	}
	return claims, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetUserName(ctx *fiber.Ctx) string {
	name, _ := GetClaims(ctx)["name"].(string)
	return name
}

func GetUserID(ctx *fiber.Ctx) string {
	sub, _ := GetClaims(ctx)["sub"].(string)
	return sub
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	role, _ := GetClaims(ctx)["role"].(string)
	return models.UserRole(role)
}
