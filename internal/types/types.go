package types

import "encoding/json"

// ClientMessage is one websocket request frame. Type names a relay operation.
type ClientMessage struct {
	Type string          `json:"type"`
	Seq  int             `json:"seq,omitempty"`
	Body json.RawMessage `json:"body,omitempty"`
}

type ServerMessage struct {
	Type  string `json:"type"` // operation name echoed back, or "error"
	Seq   int    `json:"seq,omitempty"`
	Body  any    `json:"body,omitempty"`
	Error string `json:"error,omitempty"`
}

const TypeError = "error"
