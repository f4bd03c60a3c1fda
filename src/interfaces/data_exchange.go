package interfaces

// -----------------------------------------------------------------------------
// IStreamGateway defines how the broadcast side hands events to connected clients.
// -----------------------------------------------------------------------------

type IStreamGateway interface {
	// -----------------------------------------------------------------------------
	// PushToStream sends an event to every connection subscribed to stream.
	PushToStream(stream, event string, payload interface{})

	// -----------------------------------------------------------------------------
	// PushToAll sends an event to every open connection regardless of subscriptions.
	PushToAll(event string, payload interface{})

	// -----------------------------------------------------------------------------
	// ConnectionCount returns the number of open connections.
	ConnectionCount() int
}
