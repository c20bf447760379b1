package lobbies

import "github.com/calderahq/hearth/internal/domain"

type createLobbyRequest struct {
	Nickname     string `json:"nickname" validate:"required,min=1,max=32"`
	AssistantKey string `json:"assistantKey,omitempty" validate:"omitempty,min=1,max=200"`
}

// createLobbyResponse deliberately echoes the code only; the assistant key
// is never returned after creation.
type createLobbyResponse struct {
	Code string `json:"code"`
}

type joinLobbyRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=32"`
}

type joinLobbyResponse struct {
	OK bool `json:"ok"`
}

type historyResponse struct {
	Messages []domain.Message `json:"messages"`
}
