package events

import "context"

// Event types
const (
	EventApplicationDecided    = "application_decided"
	EventApplicationCreated    = "application_created"
	EventCampaignStatusChanged = "campaign_status_changed"
	EventMessageSent           = "message_sent"
)

// Streams
const (
	StreamCampaigns = "campaigns"
	StreamMessages  = "messages"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
