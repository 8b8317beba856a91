package notify

import "github.com/gorilla/websocket"

// Default is the process-wide hub the HTTP handlers broadcast through.
var Default = NewHub()

func Broadcast(table, action string) {
	Default.Broadcast(table, action)
}

func Subscribe(conn *websocket.Conn, tables []string) {
	Default.Subscribe(conn, tables)
}
