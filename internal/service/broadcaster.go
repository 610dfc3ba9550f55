package service

// Event types pushed to owners on the live feed
const (
	EventResponseCreated = "response_created"
	EventResponseUpdated = "response_updated"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToForm(formID string, msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToForm(string, string, interface{}) {}
