package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
)

// Attempt is one submitted answer, kept for the player's history.
type Attempt struct {
	Chapter int       `json:"chapter"`
	Answer  string    `json:"answer"`
	Correct bool      `json:"correct"`
	At      time.Time `json:"at"`
}

// Storage persists player progress and attempt history.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Progress operations
	SaveProgress(ctx context.Context, p *progress.Progress) error
	// LoadProgress returns nil, nil when no progress exists for id
	LoadProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error)
	DeleteProgress(ctx context.Context, id uuid.UUID) error

	// Attempt history, oldest first
	AppendAttempt(ctx context.Context, id uuid.UUID, a Attempt) error
	ListAttempts(ctx context.Context, id uuid.UUID) ([]Attempt, error)
}
