package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewdesk/member-portal/internal/api/metrics"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, userID, action string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single auth event.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	// Idempotency check — silently skip duplicates (retried deliveries).
	isDup, err := s.dedup.IsDuplicate(ctx, event.UserID, event.Action, event.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", event.UserID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.AuthDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("user_id", event.UserID).Str("action", event.Action).Msg("duplicate auth event skipped")
		return nil
	}
	metrics.AuthDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a crashed retry cannot double-insert.
	if markErr := s.dedup.Mark(ctx, event.UserID, event.Action, event.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("user_id", event.UserID).Msg("failed to set dedup key")
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.AuthEventErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process auth event: %w", err)
	}

	metrics.AuthEventsTotal.WithLabelValues(event.Action).Inc()
	s.log.Info().
		Str("user_id", event.UserID).
		Str("action", event.Action).
		Msg("auth event recorded")

	return nil
}
