package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nba-sim-service/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only public data.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[Topic]struct{}
}

// ClientMessage is what clients send: subscribe, unsubscribe or ping.
type ClientMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.CanAccept() {
		http.Error(w, "server at capacity", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "live upgrade failed", "error", err)
		return
	}

	c := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		topics: make(map[Topic]struct{}),
	}
	h.registerClient(c)

	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(c.hub.logger, "live read failed", "error", err)
			}
			return
		}
		c.handle(data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handle(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.hub.deliver(c, Message{Type: MessageError, Error: "invalid message format"})
		return
	}

	switch msg.Type {
	case MessageSubscribe:
		topic, ok := ParseTopic(msg.Topic)
		if !ok {
			c.hub.deliver(c, Message{Type: MessageError, Error: fmt.Sprintf("unknown topic %q: use games or playoffs", msg.Topic)})
			return
		}
		c.topics[topic] = struct{}{}
		c.hub.Subscribe(c, topic)
		c.hub.deliver(c, Message{Type: MessageStatus, Topic: topic, Status: "subscribed"})
	case MessageUnsubscribe:
		topic, ok := ParseTopic(msg.Topic)
		if !ok {
			c.hub.deliver(c, Message{Type: MessageError, Error: fmt.Sprintf("unknown topic %q", msg.Topic)})
			return
		}
		if _, subscribed := c.topics[topic]; subscribed {
			delete(c.topics, topic)
			c.hub.Unsubscribe(c, topic)
		}
		c.hub.deliver(c, Message{Type: MessageStatus, Topic: topic, Status: "unsubscribed"})
	case MessagePing:
		c.hub.deliver(c, Message{Type: MessagePong})
	default:
		c.hub.deliver(c, Message{Type: MessageError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
	}
}
