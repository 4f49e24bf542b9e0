package events

import (
	"context"
	"time"
)

const (
	TopicUsers    = "user_events"
	TopicProducts = "product_events"
	TopicChat     = "chat_events"
	TopicNews     = "news_events"
)

const (
	UserRegistered  = "user_registered"
	ProductCreated  = "product_created"
	ProductUpdated  = "product_updated"
	ProductDeleted  = "product_deleted"
	ChatPosted      = "chat_message_posted"
	ChatReplyPosted = "chat_reply_posted"
	NewsPublished   = "news_published"
	NewsDeleted     = "news_deleted"
)

// Event is the envelope written to every topic.
type Event struct {
	Type    string    `json:"type"`
	ID      uint      `json:"id"`
	ActorID uint      `json:"actorId,omitempty"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

func New(typ string, id, actorID uint, payload any) Event {
	return Event{
		Type:    typ,
		ID:      id,
		ActorID: actorID,
		At:      time.Now().UTC(),
		Payload: payload,
	}
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
