package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn *connWrapper
	Send chan *Outbound
	ID   string
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn: newConnWrapper(conn),
		Send: make(chan *Outbound, 64), // buffered so slow readers don't stall the lobby
		ID:   id,
	}
}

// ReadPump decodes inbound envelopes and hands them to the coordinator until
// the connection drops, then triggers membership cleanup. Frames from one
// connection are processed in submission order.
func (c *Client) ReadPump(coord *Coordinator) {
	defer func() {
		coord.Disconnect(c)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				coord.logger.Warnw("ws read error", "conn", c.ID, "error", err)
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			c.deliver(NewError("malformed frame"))
			continue
		}

		switch envelope.Type {
		case JoinLobby:
			var payload JoinPayload
			if err := json.Unmarshal(envelope.Data, &payload); err != nil {
				c.deliver(NewJoinFailed(envelope.LobbyCode, "malformed join payload"))
				continue
			}
			coord.Join(c, payload)

		case SendMessage:
			var payload SendPayload
			if err := json.Unmarshal(envelope.Data, &payload); err != nil {
				c.deliver(NewMessageFailed(envelope.LobbyCode, "malformed message payload"))
				continue
			}
			coord.Send(c, payload)

		default:
			c.deliver(NewError("unknown event type"))
		}
	}
}

func (c *Client) WritePump(coord *Coordinator) {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Send {
		if err := c.conn.WriteJSON(msg); err != nil {
			coord.logger.Warnw("ws write error", "conn", c.ID, "error", err)
			return
		}
	}
}

// deliver queues an event for the write pump, dropping it if the client's
// buffer is full.
func (c *Client) deliver(msg *Outbound) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}
