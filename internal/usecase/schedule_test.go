package usecase

import (
	"testing"
	"time"
)

func TestSchedulerNextRun(t *testing.T) {
	s, err := NewScheduler(18, func() {}, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	before := time.Date(2026, 2, 22, 17, 0, 0, 0, time.UTC)
	if got := s.NextRun(before); !got.Equal(time.Date(2026, 2, 22, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("next run = %v", got)
	}

	// ровно в час срабатывания — следующий запуск строго позже
	at := time.Date(2026, 2, 22, 18, 0, 0, 0, time.UTC)
	if got := s.NextRun(at); !got.Equal(time.Date(2026, 2, 23, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("next run = %v", got)
	}

	after := time.Date(2026, 2, 22, 19, 30, 0, 0, time.UTC)
	if got := s.NextRun(after); !got.Equal(time.Date(2026, 2, 23, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("next run = %v", got)
	}
}

func TestSchedulerRejectsBadHour(t *testing.T) {
	if _, err := NewScheduler(24, func() {}, nil); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := NewScheduler(-1, func() {}, nil); err == nil {
		t.Fatal("expected error for hour -1")
	}

	s, err := NewScheduler(18, func() {}, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := s.SetHour(25); err == nil {
		t.Fatal("expected error for hour 25")
	}
	if s.Hour() != 18 {
		t.Fatalf("hour changed after failed SetHour: %d", s.Hour())
	}
}

func TestSchedulerSetHourReschedules(t *testing.T) {
	now := time.Date(2026, 2, 22, 10, 0, 0, 0, time.UTC)
	s, err := NewScheduler(18, func() {}, nil, WithNow(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	defer s.Stop()

	if err := s.SetHour(12); err != nil {
		t.Fatalf("set hour: %v", err)
	}
	if s.Hour() != 12 {
		t.Fatalf("hour = %d", s.Hour())
	}
	if got := s.NextRun(now); !got.Equal(time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("next run = %v", got)
	}
}
