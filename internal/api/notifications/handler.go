package notifications

import (
	"net/http"
	"strings"

	"fitness-app/internal/infra/notify"
	"fitness-app/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The JWT middleware has already authenticated the request; browsers
	// cannot set custom headers on websocket handshakes, so the origin
	// check stays permissive.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscribe upgrades the connection and streams change events until the
// client disconnects. An optional ?tables=a,b query narrows the feed.
func Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	var tables []string
	if raw := c.Query("tables"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
	}

	notify.Subscribe(conn, tables)
}
