package repository

import (
	"sync"

	"github.com/calderahq/hearth/internal/domain"
)

// Codes are six characters from a 32-symbol alphabet, so collisions are
// vanishingly rare at this scale; the retry bound exists so a collision
// re-draws instead of overwriting a live lobby.
const maxCodeRetries = 5

type lobbyRegistry struct {
	lobbies map[string]*domain.Lobby // code -> Lobby
	// defaultCredential backs lobbies created without their own key. Never
	// logged, never serialized.
	defaultCredential string
	mu                *sync.RWMutex
}

func NewLobbyRegistry(defaultCredential string) domain.LobbyRegistry {
	return &lobbyRegistry{
		lobbies:           make(map[string]*domain.Lobby),
		defaultCredential: defaultCredential,
		mu:                &sync.RWMutex{},
	}
}

// Create validates inputs, generates a fresh code, and stores the lobby with
// the supplied credential or the process-wide default. Lobbies live for the
// process lifetime; there is no delete.
func (r *lobbyRegistry) Create(nickname, credential string) (*domain.Lobby, error) {
	if err := domain.ValidateNickname(nickname); err != nil {
		return nil, err
	}
	if err := domain.ValidateCredential(credential); err != nil {
		return nil, err
	}

	if credential == "" {
		credential = r.defaultCredential
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var lobby *domain.Lobby
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		l, err := domain.NewLobby(credential)
		if err != nil {
			return nil, err
		}
		if _, taken := r.lobbies[l.Code]; !taken {
			lobby = l
			break
		}
	}
	if lobby == nil {
		return nil, domain.ErrLobbyAlreadyExists
	}

	r.lobbies[lobby.Code] = lobby

	return lobby, nil
}

func (r *lobbyRegistry) Exists(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lobbies[code]
	return ok
}

// Credential returns the lobby's assistant key. The second return is false
// when the lobby is unknown or has no key configured.
func (r *lobbyRegistry) Credential(code string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lobby, ok := r.lobbies[code]
	if !ok || lobby.Credential == "" {
		return "", false
	}
	return lobby.Credential, true
}
