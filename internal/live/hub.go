// Package live pushes league events to WebSocket subscribers.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
)

// Topic is a broadcast channel clients subscribe to.
type Topic string

const (
	TopicGames    Topic = "games"
	TopicPlayoffs Topic = "playoffs"
)

// ParseTopic validates a topic name.
func ParseTopic(raw string) (Topic, bool) {
	switch t := Topic(raw); t {
	case TopicGames, TopicPlayoffs:
		return t, true
	default:
		return "", false
	}
}

// Message types.
const (
	MessageGameFinal    = "game_final"
	MessageSeriesUpdate = "series_update"
	MessageChampion     = "champion"
	MessageStatus       = "status"
	MessagePong         = "pong"
	MessageError        = "error"

	MessageSubscribe   = "subscribe"
	MessageUnsubscribe = "unsubscribe"
	MessagePing        = "ping"
)

// Message is the envelope for every server-sent frame.
type Message struct {
	Type      string            `json:"type"`
	Topic     Topic             `json:"topic,omitempty"`
	Game      *games.Game       `json:"game,omitempty"`
	Series    *playoffs.Series  `json:"series,omitempty"`
	Champion  *playoffs.Entrant `json:"champion,omitempty"`
	Season    int               `json:"season,omitempty"`
	Status    string            `json:"status,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

const defaultMaxConnections = 500

// Hub tracks connected clients and their topic subscriptions.
type Hub struct {
	mu            sync.RWMutex
	clients       map[*Client]struct{}
	subscriptions map[Topic]map[*Client]struct{}

	closed bool

	logger         *slog.Logger
	metrics        *metrics.Recorder
	maxConnections int
	now            func() time.Time
}

var _ league.Listener = (*Hub)(nil)

// NewHub creates a hub. Call Run before serving connections.
func NewHub(logger *slog.Logger, recorder *metrics.Recorder, maxConnections int) *Hub {
	if maxConnections <= 0 {
		maxConnections = defaultMaxConnections
	}
	return &Hub{
		clients:        make(map[*Client]struct{}),
		subscriptions:  make(map[Topic]map[*Client]struct{}),
		logger:         logger,
		metrics:        recorder,
		maxConnections: maxConnections,
		now:            time.Now,
	}
}

// Run blocks until ctx is done, then disconnects every client and refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || len(h.clients) >= h.maxConnections {
		logging.Warn(h.logger, "live connection rejected at capacity", logging.FieldCount, h.maxConnections)
		if data, err := json.Marshal(Message{Type: MessageError, Error: "server at capacity", Timestamp: h.now()}); err == nil {
			c.send <- data
		}
		close(c.send)
		return
	}
	h.clients[c] = struct{}{}
	h.metrics.RecordLiveClient(1)
	logging.Info(h.logger, "live client connected", logging.FieldCount, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for topic := range h.subscriptions {
		delete(h.subscriptions[topic], c)
	}
	close(c.send)
	h.metrics.RecordLiveClient(-1)
	logging.Info(h.logger, "live client disconnected", logging.FieldCount, len(h.clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(c *Client, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]struct{})
	}
	h.subscriptions[topic][c] = struct{}{}
	logging.Debug(h.logger, "live client subscribed", logging.FieldTopic, string(topic))
}

// Unsubscribe removes a client from a topic.
func (h *Hub) Unsubscribe(c *Client, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscriptions[topic], c)
	logging.Debug(h.logger, "live client unsubscribed", logging.FieldTopic, string(topic))
}

// Broadcast sends a message to every subscriber of its topic. Clients whose buffers are full
// are disconnected.
func (h *Hub) Broadcast(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error(h.logger, "live broadcast marshal failed", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	subscribers := h.subscriptions[msg.Topic]
	for c := range subscribers {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	delivered := len(subscribers) - len(slow)
	h.mu.RUnlock()

	if delivered > 0 {
		h.metrics.RecordLiveBroadcast(string(msg.Topic))
	}
	for _, c := range slow {
		logging.Warn(h.logger, "dropping slow live client")
		h.unregisterClient(c)
	}
}

// deliver sends directly to one client if it is still registered.
func (h *Hub) deliver(c *Client, msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// CanAccept reports whether another connection fits under the cap.
func (h *Hub) CanAccept() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.closed && len(h.clients) < h.maxConnections
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Subscribers returns how many clients follow a topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[topic])
}

// OnGame publishes the final score and, for postseason games, the series state.
func (h *Hub) OnGame(_ context.Context, ev league.GameEvent) {
	g := ev.Game
	g.BoxScore = nil
	h.Broadcast(Message{Type: MessageGameFinal, Topic: TopicGames, Game: &g, Season: g.Meta.Season})
	if ev.Series != nil {
		h.Broadcast(Message{Type: MessageSeriesUpdate, Topic: TopicPlayoffs, Series: ev.Series, Season: g.Meta.Season})
	}
}

// OnChampion publishes the title winner.
func (h *Hub) OnChampion(_ context.Context, ev league.ChampionEvent) {
	champ := ev.Champion
	h.Broadcast(Message{Type: MessageChampion, Topic: TopicPlayoffs, Champion: &champ, Season: ev.Season})
}
