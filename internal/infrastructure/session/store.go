package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

const (
	keyPrefix  = "websession:"
	defaultTTL = 30 * 24 * time.Hour
)

// Store holds web-session records in Redis keyed by session ID. Records are
// read-then-conditionally-written per request with no cross-request locking:
// concurrent tabs sharing a cookie race last-writer-wins, which is acceptable
// for the low-stakes payload this store carries.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Store wrapping the given Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Get reads the record for sid. A missing record or an undecodable payload
// yields the zero SessionData, never an error: a broken web session is just
// an anonymous one.
func (s *Store) Get(ctx context.Context, sid string) (domain.SessionData, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sid).Bytes()
	if err == redis.Nil {
		return domain.SessionData{}, nil
	}
	if err != nil {
		return domain.SessionData{}, fmt.Errorf("websession get: %w", err)
	}

	var data domain.SessionData
	if json.Unmarshal(raw, &data) != nil {
		return domain.SessionData{}, nil
	}
	return data, nil
}

// Update applies mutate to the current record and writes it back, refreshing
// the TTL. A record mutated down to its zero value is deleted instead.
func (s *Store) Update(ctx context.Context, sid string, mutate func(*domain.SessionData)) error {
	data, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}

	mutate(&data)

	if data.IsZero() {
		return s.Clear(ctx, sid)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("websession marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sid, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("websession set: %w", err)
	}
	return nil
}

// Clear deletes the record for sid. Clearing an absent record is a no-op.
func (s *Store) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("websession clear: %w", err)
	}
	return nil
}

// ConsumePendingRedirect reads the pending redirect and clears it before
// returning, so a second call returns "" until a new value is set. The
// read-then-clear spans two Redis round trips; concurrent requests on the
// same cookie race last-writer-wins like every other Update on this store.
func (s *Store) ConsumePendingRedirect(ctx context.Context, sid string) (string, error) {
	data, err := s.Get(ctx, sid)
	if err != nil {
		return "", err
	}
	if data.PendingRedirect == "" {
		return "", nil
	}

	path := data.PendingRedirect
	if err := s.Update(ctx, sid, func(d *domain.SessionData) {
		d.PendingRedirect = ""
	}); err != nil {
		return "", err
	}
	return path, nil
}
