package usecase

import (
	"reflect"
	"testing"
	"time"
)

var rangeNow = time.Date(2026, 3, 15, 12, 0, 0, 0, ReportLocation)

func TestResolveRangeEmptyAndToday(t *testing.T) {
	keys1, label1 := ResolveRange("", rangeNow)
	keys2, label2 := ResolveRange("сегодня", rangeNow)
	if !reflect.DeepEqual(keys1, keys2) || label1 != label2 {
		t.Fatalf("empty and today must resolve identically: %v/%q vs %v/%q", keys1, label1, keys2, label2)
	}
	if !reflect.DeepEqual(keys1, []string{"2026-03-15"}) {
		t.Fatalf("keys = %v", keys1)
	}
	if label1 != "сегодня (15.03.2026)" {
		t.Fatalf("label = %q", label1)
	}
}

func TestResolveRangeMonth(t *testing.T) {
	keys, label := ResolveRange("месяц", rangeNow)
	if len(keys) != 15 {
		t.Fatalf("expected 15 day keys on the 15th, got %d: %v", len(keys), keys)
	}
	if keys[0] != "2026-03-01" || keys[14] != "2026-03-15" {
		t.Fatalf("keys = %v", keys)
	}
	if label != "March 2026" {
		t.Fatalf("label = %q", label)
	}
}

func TestResolveRangePeriod(t *testing.T) {
	keys, label := ResolveRange("01.02-05.02", rangeNow)
	want := []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v", keys)
	}
	if label != "01.02–05.02.2026" {
		t.Fatalf("label = %q", label)
	}
}

func TestResolveRangePeriodWithYears(t *testing.T) {
	keys, _ := ResolveRange("30.12.2025 - 02.01.2026", rangeNow)
	want := []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v", keys)
	}
}

// Перепутанные границы периода меняются местами, а не дают пустой отчёт.
func TestResolveRangeReversedPeriodSwapped(t *testing.T) {
	keys, _ := ResolveRange("05.02-01.02", rangeNow)
	if len(keys) != 5 || keys[0] != "2026-02-01" || keys[4] != "2026-02-05" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestResolveRangeSingleDate(t *testing.T) {
	keys, label := ResolveRange("22.02.2026", rangeNow)
	if !reflect.DeepEqual(keys, []string{"2026-02-22"}) {
		t.Fatalf("keys = %v", keys)
	}
	if label != "22.02.2026" {
		t.Fatalf("label = %q", label)
	}
}

func TestResolveRangeSingleDateDefaultYear(t *testing.T) {
	keys, _ := ResolveRange("22.02", rangeNow)
	if !reflect.DeepEqual(keys, []string{"2026-02-22"}) {
		t.Fatalf("keys = %v", keys)
	}
}

func TestResolveRangeGarbageFallsBackToToday(t *testing.T) {
	keys, label := ResolveRange("что-то непонятное", rangeNow)
	if !reflect.DeepEqual(keys, []string{"2026-03-15"}) {
		t.Fatalf("keys = %v", keys)
	}
	if label != "сегодня (15.03.2026)" {
		t.Fatalf("label = %q", label)
	}
}
