package reminder

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransitionAndApply(t *testing.T) {
	if !CanTransition(StatusPending, StatusSent) {
		t.Fatalf("expected pending -> sent allowed")
	}
	if !CanTransition(StatusPending, StatusAcknowledged) {
		t.Fatalf("expected pending -> acknowledged allowed")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatalf("expected pending -> completed not allowed")
	}
	if CanTransition(StatusDismissed, StatusDismissed) {
		t.Fatalf("expected dismissed -> dismissed not allowed")
	}

	rm := &Reminder{Status: StatusPending}
	now := time.Now()
	if err := ApplyTransition(rm, StatusAcknowledged, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if rm.Status != StatusAcknowledged {
		t.Fatalf("expected status acknowledged, got %s", rm.Status)
	}
	if rm.AcknowledgedAt == nil {
		t.Fatalf("expected acknowledged_at set")
	}

	if err := ApplyTransition(rm, StatusCompleted, now); err != nil {
		t.Fatalf("ApplyTransition to completed: %v", err)
	}
	if rm.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
}

func TestApplyTransitionTerminalRejects(t *testing.T) {
	now := time.Now()
	for _, st := range []Status{StatusCompleted, StatusDismissed} {
		rm := &Reminder{Status: st}
		for _, to := range []Status{StatusPending, StatusSent, StatusAcknowledged, StatusCompleted, StatusDismissed} {
			err := ApplyTransition(rm, to, now)
			if err == nil {
				t.Fatalf("expected %s -> %s rejected", st, to)
			}
			var ite *InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if rm.Status != st {
				t.Fatalf("terminal reminder mutated: %s -> %s", st, rm.Status)
			}
		}
	}
}

func TestApplyTransitionInvalidDoesNotMutate(t *testing.T) {
	rm := &Reminder{Status: StatusPending}
	if err := ApplyTransition(rm, StatusCompleted, time.Now()); err == nil {
		t.Fatalf("expected pending -> completed rejected")
	}
	if rm.Status != StatusPending {
		t.Fatalf("expected status unchanged, got %s", rm.Status)
	}
	if rm.CompletedAt != nil {
		t.Fatalf("expected completed_at untouched")
	}
}

func TestSentTimestampSetOnce(t *testing.T) {
	rm := &Reminder{Status: StatusPending}
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := ApplyTransition(rm, StatusSent, first); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if rm.SentAt == nil || !rm.SentAt.Equal(first) {
		t.Fatalf("expected sent_at = %v, got %v", first, rm.SentAt)
	}
}
