package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/lib/evaluation/workflow"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	apimodels "probation-eval-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("id is empty")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if user := authutils.GetUserID(ctx); user != "" {
		logger = logger.WithField("user", user)
	}
	return logger
}

var kindStatus = map[workflow.Kind]int{
	workflow.KindValidation:    fiber.StatusBadRequest,
	workflow.KindAuthorization: fiber.StatusForbidden,
	workflow.KindPhaseGuard:    fiber.StatusConflict,
	workflow.KindNotFound:      fiber.StatusNotFound,
	workflow.KindBusy:          fiber.StatusConflict,
	workflow.KindTransport:     fiber.StatusBadGateway,
}

// SendError - ошибки workflow отдаются с их сообщением, прочие логируются и заменяются на msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	kind := workflow.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		logger.WithError(err).Error(msg)
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
	}
	if kind == workflow.KindTransport {
		logger.WithError(err).Error(msg)
	} else {
		logger.WithError(err).Info(msg)
	}
	return ctx.Status(status).JSON(apimodels.NewError(workflow.HumanMessage(err)))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}
