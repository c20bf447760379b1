package domain

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"
)

const (
	MinContentLength = 1
	MaxContentLength = 400

	RoleUser      = "user"
	RoleAssistant = "assistant"

	// AssistantSender is the sender label carried by every assistant-role
	// message, real reply and fallback alike.
	AssistantSender = "DM"
)

var ErrInvalidContent = errors.New("message content must be between 1 and 400 characters")

// Message is an immutable chat record. ID is the creation timestamp in
// milliseconds and doubles as the sort key; the store keeps append order
// when timestamps tie, so a reply never lists before its trigger.
type Message struct {
	ID        int64  `json:"id"`
	LobbyCode string `json:"lobbyCode"`
	Sender    string `json:"sender"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

// MessageStore is the durable append-only log of chat messages. It is the
// only component whose state survives a restart.
type MessageStore interface {
	Append(ctx context.Context, msg *Message) error
	ListByLobby(ctx context.Context, code string) ([]Message, error)
	Close() error
}

func NewMessage(code, sender, role, content string) *Message {
	now := time.Now().UnixMilli()
	return &Message{
		ID:        now,
		LobbyCode: code,
		Sender:    sender,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
}

// ValidateContent enforces the 1-400 character bound before a message is
// persisted or broadcast. Lengths count runes, matching the validation at the
// HTTP boundary, so multibyte text gets the same limit on both surfaces.
func ValidateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < MinContentLength || n > MaxContentLength {
		return ErrInvalidContent
	}
	return nil
}
