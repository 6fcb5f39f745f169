package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to a websocket connection. Reads stay on the
// single reader goroutine and do not go through it.
type SafeWriter struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

// NewSafeWriter wraps conn. A zero timeout disables write deadlines.
func NewSafeWriter(conn *websocket.Conn, timeout time.Duration) *SafeWriter {
	return &SafeWriter{conn: conn, timeout: timeout}
}

// WriteJSON encodes v as one text frame.
func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timeout > 0 {
		if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
			return err
		}
	}
	return w.conn.WriteJSON(v)
}

// WriteClose sends a close frame with the given code.
func (w *SafeWriter) WriteClose(code int, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}

// Close closes the underlying connection.
func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
