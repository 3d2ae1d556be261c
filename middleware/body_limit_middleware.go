package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	apimodels "probation-eval-backend/models/api"
)

// WithBodyLimit - проверка по Content-Length, пути из skip (загрузка таблиц) ограничиваются только лимитом fiber
func WithBodyLimit(limit int64, skip ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, path := range skip {
			if strings.HasSuffix(c.Path(), path) {
				return c.Next()
			}
		}
		contentLength := c.Get("Content-Length")
		if contentLength == "" || contentLength == "0" {
			return c.Next()
		}
		size, err := strconv.ParseInt(contentLength, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid Content-Length"))
		}
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(
				fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", limit)))
		}
		return c.Next()
	}
}
