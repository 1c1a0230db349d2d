package entity

import "time"

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// FeedEvent is pushed to live feed subscribers, e.g. "help_request.created".
type FeedEvent struct {
	Type string      `json:"type"`
	ID   string      `json:"id"`
	Data interface{} `json:"data,omitempty"`
	At   time.Time   `json:"at"`
}

func NewFeedEvent(kind, action, id string, data interface{}) FeedEvent {
	return FeedEvent{
		Type: kind + "." + action,
		ID:   id,
		Data: data,
		At:   time.Now().UTC(),
	}
}
