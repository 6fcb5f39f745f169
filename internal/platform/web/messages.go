package web

import "github.com/vovakirdan/tui-flappy/internal/games/flappy"

// Client to server message types.
const (
	MessageInput  = "input"
	MessageResize = "resize"
	MessagePause  = "pause"
	MessageResume = "resume"
)

// Server to client message types.
const (
	MessageState = "state"
	MessageError = "error"
)

// ClientMessage is any message a browser sends. Fields are populated
// according to Type.
type ClientMessage struct {
	Type   string  `json:"type"`
	Source string  `json:"source,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// StateMessage carries one simulation snapshot.
type StateMessage struct {
	Type   string          `json:"type"`
	Data   flappy.Snapshot `json:"data"`
	Paused bool            `json:"paused"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newStateMessage(snap flappy.Snapshot, paused bool) StateMessage {
	return StateMessage{Type: MessageState, Data: snap, Paused: paused}
}

func newErrorMessage(msg string) ErrorMessage {
	return ErrorMessage{Type: MessageError, Message: msg}
}
