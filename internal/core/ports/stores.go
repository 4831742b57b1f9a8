package ports

import (
	"context"
	"time"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// SessionRecord is the durable shape of a session: token, normalized roles
// and the selected role, keyed by session ID.
type SessionRecord struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	Roles        []string  `json:"roles"`
	SelectedRole string    `json:"selectedRole,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionStore persists session records. Get returns domain.ErrSessionNotFound
// for unknown or expired IDs.
type SessionStore interface {
	Save(ctx context.Context, rec SessionRecord) error
	Get(ctx context.Context, id string) (*SessionRecord, error)
	Delete(ctx context.Context, id string) error
}

// DraftStore persists in-progress order drafts so a browser can resume one.
// Get returns domain.ErrDraftNotFound for unknown or expired IDs.
type DraftStore interface {
	Save(ctx context.Context, draft domain.OrderDraft) error
	Get(ctx context.Context, id string) (*domain.OrderDraft, error)
	Delete(ctx context.Context, id string) error
}
