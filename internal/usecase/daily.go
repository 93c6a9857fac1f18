package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"apix-lead-bot/internal/domain"
)

// ChartRenderer строит PNG-диаграмму распределения (реализуется
// адаптером Telegram).
type ChartRenderer interface {
	RenderBar(labels []string, values []int) ([]byte, error)
}

// DailyReport отправляет автоотчёт за сегодня и вычищает сегодняшнюю
// корзину из хранилища.
type DailyReport struct {
	Store  domain.LeadStore
	Sender domain.ReplySender
	Charts ChartRenderer
	Logger *slog.Logger
	Now    func() time.Time
}

func NewDailyReport(store domain.LeadStore, sender domain.ReplySender, charts ChartRenderer, logger *slog.Logger) *DailyReport {
	return &DailyReport{Store: store, Sender: sender, Charts: charts, Logger: logger, Now: time.Now}
}

// Send строит отчёт за сегодняшнюю корзину, шлёт его в chatID и после
// успешной отправки удаляет корзину. Ключ корзины и подпись считаются
// в ReportLocation — тем же способом, что и при приёме заявок, поэтому
// вычищается ровно та корзина, по которой построен отчёт.
func (d *DailyReport) Send(chatID int64) {
	if chatID == 0 {
		if d.Logger != nil {
			d.Logger.Warn("daily report skipped: chat not known yet")
		}
		return
	}
	now := d.Now().In(ReportLocation)
	key := now.Format(domain.DayKeyLayout)
	label := fmt.Sprintf("сегодня (%s)", now.Format("02.01.2006"))

	leads := d.Store.Get(key)
	report := BuildReport(leads, label)
	if err := d.Sender.SendMarkdown(chatID, report); err != nil {
		if d.Logger != nil {
			d.Logger.Error("daily report send failed", "chat_id", chatID, "error", err)
		}
		// корзина остаётся: отчёт за день ещё не доставлен
		return
	}
	d.sendChart(chatID, leads, key)

	if err := d.Store.Evict(key); err != nil {
		if d.Logger != nil {
			d.Logger.Error("bucket evict failed", "day", key, "error", err)
		}
		return
	}
	if d.Logger != nil {
		d.Logger.Info("daily report sent", "day", key, "leads", len(leads))
	}
}

func (d *DailyReport) sendChart(chatID int64, leads []domain.Lead, key string) {
	if d.Charts == nil || len(leads) == 0 {
		return
	}
	labels, values := CityDistribution(leads)
	png, err := d.Charts.RenderBar(labels, values)
	if err != nil {
		if d.Logger != nil {
			d.Logger.Error("daily chart render failed", "error", err)
		}
		return
	}
	if err := d.Sender.SendPNG(chatID, "cities_"+key+".png", png); err != nil && d.Logger != nil {
		d.Logger.Error("daily chart send failed", "chat_id", chatID, "error", err)
	}
}
