package overlay

import (
	"encoding/json"
	"fmt"
)

// MessageType identifies an input message sent by the embedded content.
type MessageType string

const (
	TypeMouseMove MessageType = "mousemove"
	TypeMouseDown MessageType = "mousedown"
	TypeMouseUp   MessageType = "mouseup"
	TypeKeyDown   MessageType = "keydown"
	TypeKeyUp     MessageType = "keyup"
)

// Message is the structured input message the embedded content posts across its boundary.
// Mouse messages carry coordinates in content pixels; key messages carry the key value.
type Message struct {
	Type    MessageType `json:"type"`
	ClientX float32     `json:"clientX,omitempty"`
	ClientY float32     `json:"clientY,omitempty"`
	Key     string      `json:"key,omitempty"`
}

// IsMouse reports whether the message carries pointer coordinates.
func (m *Message) IsMouse() bool {
	switch m.Type {
	case TypeMouseMove, TypeMouseDown, TypeMouseUp:
		return true
	default:
		return false
	}
}

// Valid reports whether the message type is known.
func (m *Message) Valid() bool {
	switch m.Type {
	case TypeMouseMove, TypeMouseDown, TypeMouseUp, TypeKeyDown, TypeKeyUp:
		return true
	default:
		return false
	}
}

// ParseMessage parses a JSON message from bytes and rejects unknown types.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if !msg.Valid() {
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return &msg, nil
}

// NativeEvent is a message re-expressed in host client pixels, ready to be dispatched as if the
// host had produced it.
type NativeEvent struct {
	Type MessageType
	X, Y float32
	Key  string
}

// Dispatcher receives translated events from the overlay.
type Dispatcher interface {
	DispatchNative(e NativeEvent)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(e NativeEvent)

func (f DispatcherFunc) DispatchNative(e NativeEvent) {
	f(e)
}
