package notify

import (
	"context"
	"time"

	"brandforge/internal/domain"
)

// Event announces a completed generation so other service instances can
// push progress updates to their connected clients.
type Event struct {
	UserID    string           `json:"user_id"`
	AssetType domain.AssetType `json:"asset_type"`
	AssetID   string           `json:"asset_id,omitempty"`
	ImageURL  string           `json:"image_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Publisher broadcasts generation events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

var _ Publisher = NopPublisher{}
