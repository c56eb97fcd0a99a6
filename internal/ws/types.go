package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a board session handles
type MessageType string

const (
	MessageTypeAddPiece    MessageType = "addPiece"
	MessageTypeRemovePiece MessageType = "removePiece"
	MessageTypeReset       MessageType = "reset"
	MessageTypePieceMoves  MessageType = "pieceMoves"
	MessageTypeBoardState  MessageType = "boardState"
	MessageTypeMoves       MessageType = "moves"
	MessageTypeError       MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SquarePayload addresses one square, optionally with a piece to place on it.
type SquarePayload struct {
	Square string `json:"square"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// ErrorMessage never fails; the payload is a plain struct.
func ErrorMessage(errMsg string) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: errMsg})
	return Message{Type: MessageTypeError, Payload: raw}
}
