package events

import "time"

// Event is the contract for domain events published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_POSTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

const ChatPostedType = "CHAT_POSTED"

// ChatPosted is emitted after a chat has been durably appended. Best-effort:
// the append result never depends on this event reaching the bus.
func ChatPosted(workspaceURL string, channelID, chatID, userID uint) Event {
	return BaseEvent{
		Type: ChatPostedType,
		Data: map[string]interface{}{
			"workspace_url": workspaceURL,
			"channel_id":    channelID,
			"chat_id":       chatID,
			"user_id":       userID,
		},
		OccurredAt: time.Now(),
	}
}
