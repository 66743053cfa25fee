package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

type stubAuditRepo struct {
	inserted  []domain.AuthEvent
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

type stubDedup struct {
	seen map[string]bool
	err  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(userID, action string, ts time.Time) string {
	return userID + "|" + action + "|" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, userID, action string, ts time.Time) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.seen[d.key(userID, action, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, userID, action string, ts time.Time) error {
	d.seen[d.key(userID, action, ts)] = true
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	event := domain.AuthEvent{UserID: "u1", Action: domain.EventSignIn, Timestamp: time.Now().UTC()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Action != domain.EventSignIn {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
}

func TestAuditService_Process_Duplicate(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	event := domain.AuthEvent{UserID: "u1", Action: domain.EventSignIn, Timestamp: time.Now().UTC()}
	_ = svc.Process(context.Background(), event)
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate delivery must not error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("duplicate delivery must not double-insert, got %d", len(repo.inserted))
	}
}

func TestAuditService_Process_DedupErrorStillProcesses(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.err = errors.New("redis down")
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	event := domain.AuthEvent{UserID: "u1", Action: domain.EventSignOut, Timestamp: time.Now().UTC()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("dedup failure must degrade to processing, got %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected the event to be inserted anyway")
	}
}

func TestAuditService_Process_InsertError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("write failed")}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	event := domain.AuthEvent{UserID: "u1", Action: domain.EventSignUp, Timestamp: time.Now().UTC()}
	if err := svc.Process(context.Background(), event); err == nil {
		t.Fatalf("expected error when the repository write fails")
	}
}
