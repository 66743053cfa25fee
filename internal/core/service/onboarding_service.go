package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
)

// OnboardingService completes the one-time profile step. Creation is
// monotonic: once the marker row exists, Complete becomes a no-op.
type OnboardingService struct {
	onboarding  ports.OnboardingRepository
	users       ports.UserRepository
	adminEmails map[string]struct{}
	events      ports.EventSink
	log         zerolog.Logger
}

func NewOnboardingService(onboarding ports.OnboardingRepository, users ports.UserRepository, adminEmails []string, events ports.EventSink, log zerolog.Logger) *OnboardingService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			admins[e] = struct{}{}
		}
	}
	return &OnboardingService{
		onboarding:  onboarding,
		users:       users,
		adminEmails: admins,
		events:      events,
		log:         log,
	}
}

// Complete creates the onboarding marker exactly once and, for configured
// admin emails, promotes the account to admin in the same step. Repeat calls
// return nil without touching the row.
func (s *OnboardingService) Complete(ctx context.Context, userID string, profile ports.ProfileInput) error {
	exists, err := s.onboarding.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	info := &domain.OnboardingInfo{
		UserID:      userID,
		DisplayName: profile.DisplayName,
		Company:     profile.Company,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.onboarding.Create(ctx, info); err != nil {
		return err
	}

	if _, ok := s.adminEmails[strings.ToLower(user.Email)]; ok && user.Role != domain.RoleAdmin {
		if err := s.users.SetRole(ctx, userID, domain.RoleAdmin); err != nil {
			return err
		}
		s.log.Info().Str("user_id", userID).Msg("promoted configured admin email")
	}

	s.events.Enqueue(domain.AuthEvent{
		UserID:    userID,
		Action:    domain.EventOnboardingCompleted,
		Timestamp: info.CompletedAt,
	})
	return nil
}
