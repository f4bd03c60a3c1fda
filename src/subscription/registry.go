package subscription

import (
	"sort"
	"sync"
	"time"

	"campaign-pulse/src/models"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Registry tracks connected clients and the named streams each one listens to.
// Stream names are not validated: unknown streams are legal and simply never
// receive pushes. Commands for a connection that is not (or no longer)
// connected are silent no-ops.
// -----------------------------------------------------------------------------

type Registry struct {
	mu sync.RWMutex

	// connID -> stream -> subscription
	connections map[string]map[string]models.MSubscription
	// stream -> set of connIDs
	streams map[string]map[string]struct{}
	// subscription id -> subscription
	tokens map[string]models.MSubscription
}

// -----------------------------------------------------------------------------

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[string]map[string]models.MSubscription),
		streams:     make(map[string]map[string]struct{}),
		tokens:      make(map[string]models.MSubscription),
	}
}

// -----------------------------------------------------------------------------
// Connection lifecycle
// -----------------------------------------------------------------------------

// Connect registers a connection with no subscriptions. Connecting twice is harmless.
func (r *Registry) Connect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connections[connID]; !ok {
		r.connections[connID] = make(map[string]models.MSubscription)
	}
}

// Disconnect forgets the connection and removes it from every stream.
// It returns the number of subscriptions dropped.
func (r *Registry) Disconnect(connID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.connections[connID]
	if !ok {
		return 0
	}

	for stream, sub := range subs {
		r.removeLocked(connID, stream, sub.ID)
	}
	delete(r.connections, connID)
	return len(subs)
}

// IsConnected reports whether connID is currently registered.
func (r *Registry) IsConnected(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.connections[connID]
	return ok
}

// Count is the number of open connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}

// -----------------------------------------------------------------------------
// Subscriptions
// -----------------------------------------------------------------------------

// Subscribe records interest of connID in stream and returns the subscription token.
// Subscribing to a stream twice returns the existing token. ok is false when the
// connection is unknown.
func (r *Registry) Subscribe(connID, stream string) (models.MSubscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.connections[connID]
	if !ok {
		return models.MSubscription{}, false
	}
	if existing, ok := subs[stream]; ok {
		return existing, true
	}

	sub := models.MSubscription{
		ID:           uuid.New().String(),
		ConnectionID: connID,
		Stream:       stream,
		CreatedAt:    time.Now(),
	}
	subs[stream] = sub
	if r.streams[stream] == nil {
		r.streams[stream] = make(map[string]struct{})
	}
	r.streams[stream][connID] = struct{}{}
	r.tokens[sub.ID] = sub

	return sub, true
}

// Unsubscribe removes connID from stream. It reports whether anything was removed.
func (r *Registry) Unsubscribe(connID, stream string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.connections[connID][stream]
	if !ok {
		return false
	}
	r.removeLocked(connID, stream, sub.ID)
	return true
}

// Cancel removes the subscription identified by a token returned from Subscribe.
func (r *Registry) Cancel(token models.MSubscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.tokens[token.ID]
	if !ok {
		return false
	}
	r.removeLocked(sub.ConnectionID, sub.Stream, sub.ID)
	return true
}

// -----------------------------------------------------------------------------

func (r *Registry) removeLocked(connID, stream, subID string) {
	delete(r.connections[connID], stream)
	delete(r.tokens, subID)
	if members, ok := r.streams[stream]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.streams, stream)
		}
	}
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// Connections returns every open connection, sorted.
func (r *Registry) Connections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.connections))
	for connID := range r.connections {
		result = append(result, connID)
	}
	sort.Strings(result)
	return result
}

// Subscribers returns the connections subscribed to stream, sorted.
func (r *Registry) Subscribers(stream string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.streams[stream]
	result := make([]string, 0, len(members))
	for connID := range members {
		result = append(result, connID)
	}
	sort.Strings(result)
	return result
}

// IsSubscribed reports whether connID currently listens to stream.
func (r *Registry) IsSubscribed(connID, stream string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.streams[stream][connID]
	return ok
}

// Streams returns the streams connID is subscribed to, sorted.
func (r *Registry) Streams(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.connections[connID]
	result := make([]string, 0, len(subs))
	for stream := range subs {
		result = append(result, stream)
	}
	sort.Strings(result)
	return result
}

// StreamCounts returns the number of subscribers per stream.
func (r *Registry) StreamCounts() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.streams))
	for stream, members := range r.streams {
		counts[stream] = len(members)
	}
	return counts
}
