package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	authutils "probation-eval-backend/lib/utils/auth-utils"
)

const (
	TagPid     = "pid"
	TagLatency = "latency"
	TagStatus  = "status"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagUser    = "user"
	TagBody    = "body"
	TagResBody = "resBody"
	RequestID  = "requestId"
)

// подписи передаются картинками в data url, в лог попадает только начало тела
const maxBodyLen = 1024

// FuncTag - значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func cutBody(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}

var tagFuncs = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagUser: func(c *fiber.Ctx, _ *data) interface{} {
		return authutils.GetUserID(c)
	},
	TagBody: func(c *fiber.Ctx, _ *data) interface{} {
		if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			return ""
		}
		return cutBody(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
		if c.Response().StatusCode() < fiber.StatusBadRequest {
			return ""
		}
		return cutBody(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, _ *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
