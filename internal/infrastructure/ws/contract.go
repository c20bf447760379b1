package ws

import (
	"encoding/json"

	"github.com/calderahq/hearth/internal/domain"
)

// Envelope is the frame exchanged on the live connection in both directions.
// Data is raw on the way in (decoded per Type) and a payload struct on the
// way out.
type Envelope struct {
	Type      string          `json:"type"`
	LobbyCode string          `json:"lobbyCode,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Outbound mirrors Envelope with an encodable payload.
type Outbound struct {
	Type      string `json:"type"`
	LobbyCode string `json:"lobbyCode,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Payload structs
type JoinPayload struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

type SendPayload struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
}

type UsersPayload struct {
	Users []string `json:"users"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewLobbyJoined(code string) *Outbound {
	return &Outbound{
		Type:      LobbyJoined,
		LobbyCode: code,
		Data:      struct{}{},
	}
}

func NewLobbyUsers(code string, users []string) *Outbound {
	return &Outbound{
		Type:      LobbyUsers,
		LobbyCode: code,
		Data:      UsersPayload{Users: users},
	}
}

func NewMessageReceived(msg *domain.Message) *Outbound {
	return &Outbound{
		Type:      MessageReceived,
		LobbyCode: msg.LobbyCode,
		Data:      msg,
	}
}

func NewMessageAck(code string) *Outbound {
	return &Outbound{
		Type:      MessageAck,
		LobbyCode: code,
		Data:      struct{}{},
	}
}

func NewJoinFailed(code, reason string) *Outbound {
	return &Outbound{
		Type:      JoinFailed,
		LobbyCode: code,
		Data:      ErrorPayload{Message: reason},
	}
}

func NewMessageFailed(code, reason string) *Outbound {
	return &Outbound{
		Type:      MessageFailed,
		LobbyCode: code,
		Data:      ErrorPayload{Message: reason},
	}
}

func NewError(reason string) *Outbound {
	return &Outbound{
		Type: ErrorEvent,
		Data: ErrorPayload{Message: reason},
	}
}
