// Package sse implements Server-Sent Events for real-time catalog updates and event broadcasting.
package sse

import (
	"time"

	"github.com/spindleapp/spindle-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventAlbumCreated represents an album creation event.
	EventAlbumCreated EventType = "album.created"
	// EventAlbumUpdated represents an album update event. Fired whenever the
	// album document changes, including aggregate recomputes after a review.
	EventAlbumUpdated EventType = "album.updated"

	// EventReviewCreated represents a review creation event.
	EventReviewCreated EventType = "review.created"

	// EventSeedComplete represents the completion of a bulk seeding run.
	EventSeedComplete EventType = "catalog.seed_completed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`
}

// AlbumEventData is the data payload for album events. The album carries its
// recomputed aggregates so clients can render without a follow-up fetch.
type AlbumEventData struct {
	Album *domain.Album `json:"album"`
}

// ReviewEventData is the data payload for review events.
type ReviewEventData struct {
	Review *domain.Review `json:"review"`
}

// SeedCompleteEventData is the data payload for seed completion events.
type SeedCompleteEventData struct {
	CompletedAt  time.Time `json:"completed_at"`
	AlbumsAdded  int       `json:"albums_added"`
	ReviewsAdded int       `json:"reviews_added"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewAlbumCreatedEvent creates an album.created event.
func NewAlbumCreatedEvent(album *domain.Album) Event {
	return Event{
		Type:      EventAlbumCreated,
		Data:      AlbumEventData{Album: album},
		Timestamp: time.Now(),
	}
}

// NewAlbumUpdatedEvent creates an album.updated event.
func NewAlbumUpdatedEvent(album *domain.Album) Event {
	return Event{
		Type:      EventAlbumUpdated,
		Data:      AlbumEventData{Album: album},
		Timestamp: time.Now(),
	}
}

// NewReviewCreatedEvent creates a review.created event.
func NewReviewCreatedEvent(review *domain.Review) Event {
	return Event{
		Type:      EventReviewCreated,
		Data:      ReviewEventData{Review: review},
		Timestamp: time.Now(),
	}
}

// NewSeedCompleteEvent creates a catalog.seed_completed event.
func NewSeedCompleteEvent(albums, reviews int) Event {
	return Event{
		Type: EventSeedComplete,
		Data: SeedCompleteEventData{
			CompletedAt:  time.Now(),
			AlbumsAdded:  albums,
			ReviewsAdded: reviews,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
