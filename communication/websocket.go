package communication

import (
	"net/http"
	"time"

	"monopoly/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket pushes the current snapshot on connect and every adopted
// snapshot after that. Incoming messages are ignored.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.session.Subscribe()
	defer unsubscribe()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if gs, err := s.session.Snapshot(); err == nil {
		if err := writeSnapshot(conn, gs); err != nil {
			return
		}
	}

	for {
		select {
		case <-gone:
			return
		case gs, open := <-updates:
			if !open {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeTimeout))
				return
			}
			if err := writeSnapshot(conn, gs); err != nil {
				log.Debug().Err(err).Msg("websocket client dropped")
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, gs game.GameState) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(gs)
}
