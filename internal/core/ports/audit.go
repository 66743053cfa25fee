package ports

import (
	"context"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single auth event: dedup check then persistence.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// EventSink accepts auth events for asynchronous processing. Implementations
// must preserve per-user ordering.
type EventSink interface {
	Enqueue(event domain.AuthEvent)
}

// WebSessionStore reads and writes the server-held web session keyed by the
// browser cookie's session ID. Get returns the zero SessionData for a missing
// record; it never invents an error out of absence.
type WebSessionStore interface {
	Get(ctx context.Context, sid string) (domain.SessionData, error)
	Update(ctx context.Context, sid string, mutate func(*domain.SessionData)) error
	Clear(ctx context.Context, sid string) error

	// ConsumePendingRedirect reads the pending redirect and clears it before
	// returning. Exactly-once per value: a second call returns "" until set
	// again through Update.
	ConsumePendingRedirect(ctx context.Context, sid string) (string, error)
}
