package job

import (
	"errors"
	"testing"
	"time"
)

func TestCanPostWithDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := CanPostWithDeadline(now.Add(time.Minute), now); err != nil {
		t.Fatalf("future deadline rejected: %v", err)
	}
	if err := CanPostWithDeadline(now, now); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Fatalf("deadline equal to now must be rejected, got %v", err)
	}
	if err := CanPostWithDeadline(now.Add(-time.Minute), now); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Fatalf("past deadline must be rejected, got %v", err)
	}
}

func TestCanPostWithDeadline_ComparesInstants(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	jakarta := time.FixedZone("WIB", 7*60*60)

	// Same instant rendered in another zone is still not in the future.
	if err := CanPostWithDeadline(now.In(jakarta), now); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Fatalf("zone change must not make an instant future, got %v", err)
	}
	if err := CanPostWithDeadline(now.Add(time.Second).In(jakarta), now); err != nil {
		t.Fatalf("future instant rejected after zone change: %v", err)
	}
}

func TestCanApply(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	open := Posting{Deadline: now.Add(time.Hour)}
	if err := CanApply(open, now); err != nil {
		t.Fatalf("open posting rejected: %v", err)
	}

	atDeadline := Posting{Deadline: now}
	if err := CanApply(atDeadline, now); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("deadline instant must close the posting, got %v", err)
	}

	closed := Posting{Deadline: now.Add(-time.Hour)}
	if err := CanApply(closed, now); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("closed posting admitted, got %v", err)
	}
}
