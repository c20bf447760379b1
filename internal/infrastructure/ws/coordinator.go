// Package ws is the live half of the session coordinator: it owns the
// per-lobby subscription groups, fans out chat and roster events, and
// triggers the assistant reply that follows each user message.
package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/calderahq/hearth/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Responder produces the assistant message for one user message. It never
// fails; unavailability comes back as a fallback message.
type Responder interface {
	Respond(ctx context.Context, code, userContent string) *domain.Message
}

type Coordinator struct {
	registry  domain.LobbyRegistry
	tracker   domain.MembershipTracker
	store     domain.MessageStore
	responder Responder
	logger    *zap.SugaredLogger

	subscribers map[string]map[string]*Client // code -> connID -> Client
	mu          sync.RWMutex

	upgrader websocket.Upgrader
}

func NewCoordinator(
	registry domain.LobbyRegistry,
	tracker domain.MembershipTracker,
	store domain.MessageStore,
	responder Responder,
	logger *zap.SugaredLogger,
) *Coordinator {
	return &Coordinator{
		registry:    registry,
		tracker:     tracker,
		store:       store,
		responder:   responder,
		logger:      logger,
		subscribers: make(map[string]map[string]*Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Anyone holding a lobby code may connect; there is no user auth.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (c *Coordinator) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return c.upgrader.Upgrade(w, r, nil)
}

// Join handles a live-connection join request. Failures go back to the
// caller only; success subscribes the connection and rebroadcasts the
// roster to the whole lobby.
func (c *Coordinator) Join(client *Client, payload JoinPayload) {
	if err := domain.ValidateCode(payload.Code); err != nil {
		client.deliver(NewJoinFailed(payload.Code, err.Error()))
		return
	}
	if err := domain.ValidateNickname(payload.Nickname); err != nil {
		client.deliver(NewJoinFailed(payload.Code, err.Error()))
		return
	}
	if !c.registry.Exists(payload.Code) {
		client.deliver(NewJoinFailed(payload.Code, domain.ErrLobbyNotFound.Error()))
		return
	}

	// A connection is in at most one lobby; joining another moves it.
	if prev, ok := c.tracker.LobbyOf(client.ID); ok && prev != payload.Code {
		c.unsubscribe(prev, client)
	}

	c.tracker.Join(payload.Code, client.ID, payload.Nickname)
	c.subscribe(payload.Code, client)

	client.deliver(NewLobbyJoined(payload.Code))
	c.broadcastRoster(payload.Code)

	c.logger.Infow("member joined", "lobby", payload.Code, "conn", client.ID)
}

// Send handles one inbound chat message: validate, persist, fan out, then
// kick off the assistant reply without blocking the sender's ack.
func (c *Coordinator) Send(client *Client, payload SendPayload) {
	if err := domain.ValidateContent(payload.Content); err != nil {
		client.deliver(NewMessageFailed(payload.Code, err.Error()))
		return
	}
	if err := domain.ValidateNickname(payload.Nickname); err != nil {
		client.deliver(NewMessageFailed(payload.Code, err.Error()))
		return
	}
	if !c.registry.Exists(payload.Code) {
		client.deliver(NewMessageFailed(payload.Code, domain.ErrLobbyNotFound.Error()))
		return
	}

	msg := domain.NewMessage(payload.Code, payload.Nickname, domain.RoleUser, payload.Content)
	c.persist(msg)

	c.broadcast(NewMessageReceived(msg))
	client.deliver(NewMessageAck(payload.Code))

	// Detached task with its own error boundary: the reply (real or
	// fallback) is always persisted and broadcast, and a disconnect does
	// not cancel it. The provider client carries the only timeout.
	go func() {
		reply := c.responder.Respond(context.Background(), payload.Code, payload.Content)
		c.persist(reply)
		c.broadcast(NewMessageReceived(reply))
	}()
}

// Disconnect tears down a connection's membership and, if it was in a lobby,
// rebroadcasts that lobby's roster exactly once.
func (c *Coordinator) Disconnect(client *Client) {
	code, wasMember := c.tracker.Leave(client.ID)

	// Unsubscribe and close under the same lock broadcast holds, so no
	// in-flight fan-out can hit a closed channel.
	c.mu.Lock()
	if wasMember {
		c.removeLocked(code, client)
	}
	close(client.Send)
	c.mu.Unlock()

	if wasMember {
		c.broadcastRoster(code)
		c.logger.Infow("member left", "lobby", code, "conn", client.ID)
	}
}

// persist appends a message to the durable log. A storage failure is logged
// and delivery proceeds: live responsiveness wins over strict durability,
// at the cost of a message a restarted server would not recall.
func (c *Coordinator) persist(msg *domain.Message) {
	if err := c.store.Append(context.Background(), msg); err != nil {
		c.logger.Errorw("failed to persist message", "lobby", msg.LobbyCode, "error", err)
	}
}

func (c *Coordinator) subscribe(code string, client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.subscribers[code]
	if !ok {
		lobby = make(map[string]*Client)
		c.subscribers[code] = lobby
	}
	lobby[client.ID] = client
}

func (c *Coordinator) unsubscribe(code string, client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(code, client)
}

func (c *Coordinator) removeLocked(code string, client *Client) {
	if lobby, ok := c.subscribers[code]; ok {
		delete(lobby, client.ID)
		if len(lobby) == 0 {
			delete(c.subscribers, code)
		}
	}
}

func (c *Coordinator) broadcastRoster(code string) {
	c.broadcast(NewLobbyUsers(code, c.tracker.Roster(code)))
}

// broadcast fans an event out to every current subscriber of the lobby.
// Sends are non-blocking, so holding the read lock through delivery is cheap
// and keeps fan-out ordered against unsubscribe+close.
func (c *Coordinator) broadcast(msg *Outbound) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, client := range c.subscribers[msg.LobbyCode] {
		if !client.deliver(msg) {
			c.logger.Warnw("client buffer full, dropping event", "conn", client.ID, "type", msg.Type)
		}
	}
}
