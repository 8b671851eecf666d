package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifica quien emitio un mensaje dentro del chat.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message es una fila inmutable de la lista de chat.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// NewMessage crea un mensaje con id aleatorio y timestamp en milisegundos.
func NewMessage(role Role, text string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: now.UnixMilli(),
	}
}
