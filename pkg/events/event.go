package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TICKET_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTicketIngested marks a ticket freshly fetched from Athena and stored.
func NewTicketIngested(entityId, ticketId string) Event {
	return BaseEvent{
		Type: "TICKET_INGESTED",
		Data: map[string]interface{}{
			"entity_id": entityId,
			"ticket_id": ticketId,
		},
		OccurredAt: time.Now(),
	}
}

// NewTicketEmbedded marks a ticket whose title and description vectors
// have been computed and persisted.
func NewTicketEmbedded(entityId, ticketId string) Event {
	return BaseEvent{
		Type: "TICKET_EMBEDDED",
		Data: map[string]interface{}{
			"entity_id": entityId,
			"ticket_id": ticketId,
		},
		OccurredAt: time.Now(),
	}
}
