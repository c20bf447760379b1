package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_JoinAndRoster(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	tracker.Join("ABCDEF", "conn-1", "Alice")
	tracker.Join("ABCDEF", "conn-2", "Bob")

	req.ElementsMatch([]string{"Alice", "Bob"}, tracker.Roster("ABCDEF"))

	code, ok := tracker.LobbyOf("conn-1")
	req.True(ok)
	req.Equal("ABCDEF", code)
}

func TestTracker_RejoinOverwritesNickname(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	tracker.Join("ABCDEF", "conn-1", "Alice")
	tracker.Join("ABCDEF", "conn-1", "Alicia")

	req.Equal([]string{"Alicia"}, tracker.Roster("ABCDEF"))
}

func TestTracker_JoiningAnotherLobbyMovesConnection(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	tracker.Join("AAAAAA", "conn-1", "Alice")
	tracker.Join("BBBBBB", "conn-1", "Alice")

	req.Empty(tracker.Roster("AAAAAA"))
	req.Equal([]string{"Alice"}, tracker.Roster("BBBBBB"))

	code, ok := tracker.LobbyOf("conn-1")
	req.True(ok)
	req.Equal("BBBBBB", code)
}

func TestTracker_Leave(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	tracker.Join("ABCDEF", "conn-1", "Alice")
	tracker.Join("ABCDEF", "conn-2", "Bob")

	code, ok := tracker.Leave("conn-1")
	req.True(ok)
	req.Equal("ABCDEF", code)
	req.Equal([]string{"Bob"}, tracker.Roster("ABCDEF"))

	// second leave for the same connection is a no-op
	_, ok = tracker.Leave("conn-1")
	req.False(ok)
}

func TestTracker_LeaveWithoutJoin(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	_, ok := tracker.Leave("never-joined")
	req.False(ok)
}

func TestTracker_EmptyLobbyRoster(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker()

	req.Empty(tracker.Roster("ABCDEF"))
	req.NotNil(tracker.Roster("ABCDEF"))
}
