package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	wsclient "probation-eval-backend/lib/ws/client"
	connectionhub "probation-eval-backend/lib/ws/hub/connection-hub"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return ctx.Next()
	})
	router.Get("", websocket.New(dashboardHandler))
}

// @Summary События по оценкам
// @Tags Websocket
// @Description Изменения статусов оценок для дашборда
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /api/v1/ws [get]
func dashboardHandler(c *websocket.Conn) {
	clientID := uuid.NewString()
	logger := log.WithField("client_id", clientID)
	logger.Debug("клиент подключен")
	connectionhub.Instance.AddClient(clientID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(clientID)
		logger.Debug("клиент отключен")
	}()
	wsclient.NewClient(clientID, c).Dispatch()
}
