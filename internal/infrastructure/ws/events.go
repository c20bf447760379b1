package ws

const (
	// client -> coordinator
	JoinLobby   = "lobby.join"
	SendMessage = "lobby.message"

	// coordinator -> clients
	LobbyJoined     = "lobby.joined"
	LobbyUsers      = "lobby.users"
	MessageReceived = "lobby.message"
	MessageAck      = "message.ack"

	JoinFailed    = "error.join"
	MessageFailed = "error.message"
	ErrorEvent    = "error"
)
