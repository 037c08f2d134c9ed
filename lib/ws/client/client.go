package wsclient

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

func NewClient(userID int64, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

// WsClient drains the inbound side of a push connection, clients only listen.
type WsClient struct {
	conn   *websocket.Conn
	userID int64
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func (c *WsClient) Dispatch() {
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithField("user_id", c.userID).WithError(err).Error("failed to read ws message")
			}
			break
		}
		log.WithField("user_id", c.userID).WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
