package domain

// Member is one live connection's participation in a lobby. ConnID is opaque
// and unique per connection; Nickname is display text, not an identity.
type Member struct {
	ConnID   string `json:"connId"`
	Nickname string `json:"nickname"`
}

func NewMember(connID, nickname string) *Member {
	return &Member{
		ConnID:   connID,
		Nickname: nickname,
	}
}

// MembershipTracker owns all Member records, keyed by lobby then connection.
// State is volatile and rebuilt from nothing on restart; clients rejoin.
type MembershipTracker interface {
	Join(code, connID, nickname string)
	Leave(connID string) (code string, ok bool)
	Roster(code string) []string
	LobbyOf(connID string) (code string, ok bool)
}
