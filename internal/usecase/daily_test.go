package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"apix-lead-bot/internal/domain"
	"apix-lead-bot/internal/infra/memory"
)

type fakeSender struct {
	texts []string
	pngs  []string
	fail  bool
}

func (f *fakeSender) SendMarkdown(chatID int64, text string) error {
	if f.fail {
		return errors.New("telegram down")
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSender) SendPNG(chatID int64, name string, png []byte) error {
	f.pngs = append(f.pngs, name)
	return nil
}

func newDaily(store domain.LeadStore, sender domain.ReplySender) *DailyReport {
	d := NewDailyReport(store, sender, nil, nil)
	d.Now = func() time.Time { return time.Date(2026, 2, 22, 18, 0, 0, 0, time.UTC) }
	return d
}

func TestDailyReportSendsAndEvicts(t *testing.T) {
	store := memory.NewLeadStore()
	l := domain.Lead{Phone: "+1", Location: "киев", Area: "25", Platform: "Instagram",
		Source: domain.SourceMetaAds, CreatedAt: time.Date(2026, 2, 22, 10, 0, 0, 0, ReportLocation)}
	if err := store.Append("2026-02-22", l); err != nil {
		t.Fatalf("append: %v", err)
	}

	sender := &fakeSender{}
	newDaily(store, sender).Send(42)

	if len(sender.texts) != 1 {
		t.Fatalf("expected one report, got %d", len(sender.texts))
	}
	if !strings.Contains(sender.texts[0], "сегодня (22.02.2026)") {
		t.Fatalf("report label wrong:\n%s", sender.texts[0])
	}
	if got := store.Get("2026-02-22"); len(got) != 0 {
		t.Fatalf("bucket must be evicted after send, got %d leads", len(got))
	}
}

func TestDailyReportSkippedWithoutChat(t *testing.T) {
	store := memory.NewLeadStore()
	_ = store.Append("2026-02-22", domain.Lead{Phone: "+1"})

	sender := &fakeSender{}
	newDaily(store, sender).Send(0)

	if len(sender.texts) != 0 {
		t.Fatal("report must not be sent without a known chat")
	}
	if got := store.Get("2026-02-22"); len(got) != 1 {
		t.Fatal("bucket must be kept when report is skipped")
	}
}

func TestDailyReportKeepsBucketOnSendFailure(t *testing.T) {
	store := memory.NewLeadStore()
	_ = store.Append("2026-02-22", domain.Lead{Phone: "+1"})

	sender := &fakeSender{fail: true}
	newDaily(store, sender).Send(42)

	if got := store.Get("2026-02-22"); len(got) != 1 {
		t.Fatal("bucket must survive a failed send")
	}
}
