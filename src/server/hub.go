package server

import (
	"encoding/json"
	"sync"

	"campaign-pulse/src/logger"
	"campaign-pulse/src/models"
	"campaign-pulse/src/subscription"
	"campaign-pulse/src/telemetry"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// hubQueueSize bounds the outbound queue between producers and the hub loop.
const hubQueueSize = 256

// -----------------------------------------------------------------------------
// outbound is one queued push. An empty stream addresses every connection.
// -----------------------------------------------------------------------------

type outbound struct {
	stream string
	event  *models.MEvent
}

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// Hub owns the websocket clients. Connection and subscription bookkeeping lives
// in the Registry; the hub loop only resolves recipients and writes to their
// send buffers.
type Hub struct {
	Registry  *subscription.Registry
	Logger    *logger.Logger
	Telemetry *telemetry.Metrics

	clients    map[string]*Client // owned by the run loop
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	quit     chan struct{}
	stopOnce sync.Once
}

// -----------------------------------------------------------------------------

func NewHub(registry *subscription.Registry, log *logger.Logger, tel *telemetry.Metrics) *Hub {
	return &Hub{
		Registry:   registry,
		Logger:     log,
		Telemetry:  tel,
		clients:    make(map[string]*Client),
		broadcast:  make(chan outbound, hubQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Run is the main hub loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.id] = client

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.quit:
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.send)
			}
			return
		}
	}
}

// -----------------------------------------------------------------------------

func (h *Hub) deliver(msg outbound) {
	var recipients []string
	if msg.stream == "" {
		recipients = h.Registry.Connections()
	} else {
		recipients = h.Registry.Subscribers(msg.stream)
	}

	delivered := 0
	for _, id := range recipients {
		client, ok := h.clients[id]
		if !ok {
			// registered in the Registry but not yet handed to the loop
			continue
		}
		select {
		case client.send <- msg.event:
			delivered++
		default:
			// Client too slow, disconnect to prevent Hub blocking
			delete(h.clients, id)
			close(client.send)
			h.Registry.Disconnect(id)
			h.Telemetry.IncDropped()
			h.Telemetry.SetConnections(h.Registry.Count())
			h.Logger.Warning("Dropping slow client %s", id)
		}
	}
	h.Telemetry.IncPush(msg.event.Event, delivered)
}

// -----------------------------------------------------------------------------

// Stop ends the hub loop and closes every client send buffer. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// -----------------------------------------------------------------------------
// Connection lifecycle
// -----------------------------------------------------------------------------

// Connect registers a new websocket connection. The initial snapshot is queued
// on the client before it becomes visible to the hub loop, so it is always the
// first event the client receives.
func (h *Hub) Connect(conn *websocket.Conn, initial models.MMetricSnapshot) (*Client, bool) {
	client := &Client{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MEvent, clientQueueSize),
	}

	h.Registry.Connect(client.id)
	client.send <- models.NewEvent("", models.EventInitialSnapshot, initial)

	select {
	case h.register <- client:
	case <-h.quit:
		h.Registry.Disconnect(client.id)
		return nil, false
	}

	h.Telemetry.SetConnections(h.Registry.Count())
	h.Logger.Info("Client %s connected (%d open)", client.id, h.Registry.Count())
	return client, true
}

// -----------------------------------------------------------------------------

// Disconnect removes the client from every stream and from the hub.
func (h *Hub) Disconnect(client *Client) {
	dropped := h.Registry.Disconnect(client.id)

	select {
	case h.unregister <- client:
	case <-h.quit:
	}

	h.Telemetry.SetConnections(h.Registry.Count())
	h.Logger.Info("Client %s disconnected, %d subscriptions released", client.id, dropped)
}

// -----------------------------------------------------------------------------
// Stream Gateway Implementation
// -----------------------------------------------------------------------------

// PushToStream queues event for every connection subscribed to stream.
func (h *Hub) PushToStream(stream, event string, payload interface{}) {
	h.enqueue(outbound{stream: stream, event: models.NewEvent(stream, event, payload)})
}

// PushToAll queues event for every open connection.
func (h *Hub) PushToAll(event string, payload interface{}) {
	h.enqueue(outbound{event: models.NewEvent("", event, payload)})
}

// ConnectionCount returns the number of open connections.
func (h *Hub) ConnectionCount() int {
	return h.Registry.Count()
}

// -----------------------------------------------------------------------------

func (h *Hub) enqueue(msg outbound) {
	select {
	case h.broadcast <- msg:
	case <-h.quit:
	}
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage applies a subscribe or unsubscribe command. A message
// that is not valid JSON closes the connection.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		h.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.close()
		return
	}

	if cmd.Stream == "" {
		h.Logger.Debug("Ignoring %q without stream from %s", cmd.Command, client.id)
		return
	}

	switch cmd.Command {
	case models.CommandSubscribe:
		if sub, ok := h.Registry.Subscribe(client.id, cmd.Stream); ok {
			h.Logger.Debug("Client %s subscribed to %s (%s)", client.id, cmd.Stream, sub.ID)
		}
	case models.CommandUnsubscribe:
		if h.Registry.Unsubscribe(client.id, cmd.Stream) {
			h.Logger.Debug("Client %s unsubscribed from %s", client.id, cmd.Stream)
		}
	default:
		h.Logger.Debug("Unknown command %q from %s", cmd.Command, client.id)
	}
}
