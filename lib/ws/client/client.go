package wsclient

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

func NewClient(clientID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:     c,
		clientID: clientID,
	}
}

type WsClient struct {
	conn     *websocket.Conn
	clientID string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает входящие сообщения до закрытия соединения, клиент ничего не присылает кроме ping
func (c *WsClient) Dispatch() {
	for {
		if c.conn == nil {
			return
		}
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).WithField("client_id", c.clientID).Error("ошибка получения сообщения")
			}
			return
		}
	}
}
