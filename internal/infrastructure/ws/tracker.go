package ws

import (
	"sync"

	"github.com/calderahq/hearth/internal/domain"
)

// Tracker is the in-memory membership table: lobby -> connID -> nickname,
// plus a reverse index so a disconnect can find its lobby without scanning.
// Nothing here is durable; a restart empties it and clients rejoin.
type Tracker struct {
	members map[string]map[string]string // code -> connID -> nickname
	lobbies map[string]string            // connID -> code
	mu      sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{
		members: make(map[string]map[string]string),
		lobbies: make(map[string]string),
	}
}

// Join records a connection's membership. Re-joining the same lobby
// overwrites the nickname; joining a different lobby moves the connection,
// leaving the old lobby first.
func (t *Tracker) Join(code, connID, nickname string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.lobbies[connID]; ok && prev != code {
		t.removeLocked(prev, connID)
	}

	lobby, ok := t.members[code]
	if !ok {
		lobby = make(map[string]string)
		t.members[code] = lobby
	}
	lobby[connID] = nickname
	t.lobbies[connID] = code
}

// Leave removes the connection from its current lobby. It is safe to call
// exactly once per disconnect and safe on a connection that never joined.
func (t *Tracker) Leave(connID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	code, ok := t.lobbies[connID]
	if !ok {
		return "", false
	}

	t.removeLocked(code, connID)
	return code, true
}

func (t *Tracker) removeLocked(code, connID string) {
	if lobby, ok := t.members[code]; ok {
		delete(lobby, connID)
		if len(lobby) == 0 {
			delete(t.members, code)
		}
	}
	delete(t.lobbies, connID)
}

// Roster returns a snapshot of current display names. It is a presence list,
// not a ranked list; order is not stable across joins and leaves.
func (t *Tracker) Roster(code string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lobby := t.members[code]
	users := make([]string, 0, len(lobby))
	for _, nickname := range lobby {
		users = append(users, nickname)
	}
	return users
}

func (t *Tracker) LobbyOf(connID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	code, ok := t.lobbies[connID]
	return code, ok
}

var _ domain.MembershipTracker = (*Tracker)(nil)
