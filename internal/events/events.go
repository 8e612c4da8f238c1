// Package events connects the finance service to the platform's Kafka topics.
// Profile lifecycle events are published; user lifecycle events from the auth
// service are consumed.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Published topics.
const (
	TopicProfileCreated = "user.profile.created"
	TopicProfileUpdated = "profile.updated"
	TopicProfileDeleted = "profile.deleted"
)

// Consumed topics.
const (
	TopicUserRegistered = "user.registered"
	TopicUserDeleted    = "user.deleted"
)

const (
	EventProfileCreated = "PROFILE_CREATED"
	EventProfileUpdated = "PROFILE_UPDATED"
	EventProfileDeleted = "PROFILE_DELETED"
)

// ProfileEvent is the JSON payload of every published profile event.
type ProfileEvent struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	EventType   string    `json:"eventType"`
	SectionName string    `json:"sectionName,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewProfileEvent(eventType, userID, section string) ProfileEvent {
	return ProfileEvent{
		EventID:     uuid.NewString(),
		UserID:      userID,
		EventType:   eventType,
		SectionName: section,
		Timestamp:   time.Now().UTC(),
	}
}

// Topic returns the topic an event type is published on.
func Topic(eventType string) string {
	switch eventType {
	case EventProfileCreated:
		return TopicProfileCreated
	case EventProfileDeleted:
		return TopicProfileDeleted
	default:
		return TopicProfileUpdated
	}
}

// UserEvent is the payload of the auth service's user lifecycle events.
type UserEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// Publisher sends profile events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event ProfileEvent) error
	Close()
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ProfileEvent) error { return nil }

func (NoopPublisher) Close() {}
