package vizlog

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// WebSocketSink streams entries to a remote viewer over a websocket
// connection, one JSON message per entry.
type WebSocketSink struct {
	conn *websocket.Conn
}

// DialWebSocket connects to a viewer at url (ws:// or wss://).
func DialWebSocket(url string) (*WebSocketSink, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to viewer at %s: %w", url, err)
	}
	return &WebSocketSink{conn: conn}, nil
}

// Write sends one entry.
func (s *WebSocketSink) Write(entry Entry) error {
	return s.conn.WriteJSON(entry)
}

// Close sends a close frame and drops the connection.
func (s *WebSocketSink) Close() error {
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}
