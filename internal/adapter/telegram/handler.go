package telegram

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"apix-lead-bot/internal/domain"
	"apix-lead-bot/internal/usecase"
)

const helpText = "📋 *Доступные команды:*\n\n" +
	"/report — отчёт за сегодня\n" +
	"/report 22.02.2026 — за конкретный день\n" +
	"/report 22.02 — за день текущего года\n" +
	"/report 01.02-22.02 — за период\n" +
	"/report месяц — за текущий месяц\n" +
	"/settime 18 — час автоотчёта (UTC)\n\n" +
	"Автоматический отчёт отправляется каждый день."

type Handler struct {
	bot    *tgbotapi.BotAPI
	store  domain.LeadStore
	charts usecase.ChartRenderer
	sched  *usecase.Scheduler
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	chatID int64
}

func NewHandler(bot *tgbotapi.BotAPI, store domain.LeadStore, charts usecase.ChartRenderer, logger *slog.Logger) *Handler {
	return &Handler{
		bot:    bot,
		store:  store,
		charts: charts,
		logger: logger,
		now:    time.Now,
	}
}

// SetScheduler привязывает планировщик, которым управляет /settime.
func (h *Handler) SetScheduler(s *usecase.Scheduler) { h.sched = s }

// SetChatID задаёт группу для автоотчёта заранее; без этого она
// запоминается по первому входящему сообщению.
func (h *Handler) SetChatID(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chatID = chatID
}

// ChatID возвращает группу, из которой приходят заявки (0 — ещё не известна).
func (h *Handler) ChatID() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chatID
}

func (h *Handler) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		h.latchChatID(msg.Chat.ID)

		if msg.IsCommand() {
			switch msg.Command() {
			case "report":
				h.cmdReport(msg)
			case "help":
				h.sendMarkdown(msg.Chat.ID, helpText)
			case "settime":
				h.cmdSetTime(msg)
			}
			continue
		}

		text := msg.Text
		if text == "" {
			text = msg.Caption
		}
		h.handleIncoming(text)
	}
}

func (h *Handler) latchChatID(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.chatID == 0 {
		h.chatID = chatID
		if h.logger != nil {
			h.logger.Info("report chat latched", "chat_id", chatID)
		}
	}
}

func (h *Handler) handleIncoming(text string) {
	lead, ok := usecase.ParseLead(text, h.now())
	if !ok {
		// обычное сообщение в чате, не уведомление о заявке
		return
	}
	lead.ID = uuid.NewString()
	key := lead.DayKey(usecase.ReportLocation)
	if err := h.store.Append(key, lead); err != nil {
		if h.logger != nil {
			h.logger.Error("lead append failed", "lead_id", lead.ID, "day", key, "error", err)
		}
		return
	}
	if h.logger != nil {
		h.logger.Info("lead saved", "lead_id", lead.ID, "day", key, "source", lead.Source, "location", lead.Location)
	}
}

func (h *Handler) cmdReport(msg *tgbotapi.Message) {
	keys, label := usecase.ResolveRange(msg.CommandArguments(), h.now())
	var leads []domain.Lead
	for _, key := range keys {
		leads = append(leads, h.store.Get(key)...)
	}
	h.sendMarkdown(msg.Chat.ID, usecase.BuildReport(leads, label))
	h.sendCityChart(msg.Chat.ID, leads)
}

func (h *Handler) cmdSetTime(msg *tgbotapi.Message) {
	if h.sched == nil {
		h.sendText(msg.Chat.ID, "Планировщик недоступен")
		return
	}
	arg := strings.TrimSpace(msg.CommandArguments())
	hour, err := strconv.Atoi(arg)
	if err != nil {
		h.sendText(msg.Chat.ID, "Использование: /settime <час 0-23> (UTC)")
		return
	}
	if err := h.sched.SetHour(hour); err != nil {
		h.sendText(msg.Chat.ID, "Использование: /settime <час 0-23> (UTC)")
		return
	}
	local := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).In(usecase.ReportLocation)
	h.sendText(msg.Chat.ID, fmt.Sprintf("Ежедневный отчёт перенесён на %02d:00 UTC (%s по Киеву)", hour, local.Format("15:04")))
	if h.logger != nil {
		h.logger.Info("daily report hour changed", "hour_utc", hour, "chat_id", msg.Chat.ID)
	}
}

// sendCityChart прикладывает к отчёту диаграмму распределения по
// городам; при пустом наборе или ошибке рендера отчёт уходит без неё.
func (h *Handler) sendCityChart(chatID int64, leads []domain.Lead) {
	if h.charts == nil || len(leads) == 0 {
		return
	}
	labels, values := usecase.CityDistribution(leads)
	png, err := h.charts.RenderBar(labels, values)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("city chart render failed", "error", err)
		}
		return
	}
	fname := "cities_" + strconv.FormatInt(h.now().UnixNano(), 10) + ".png"
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: fname, Bytes: png})
	if _, err := h.bot.Send(photo); err != nil && h.logger != nil {
		h.logger.Error("city chart send failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil && h.logger != nil {
		h.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil && h.logger != nil {
		h.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

// Реализация отправителя для юзкейсов
type Sender struct{ bot *tgbotapi.BotAPI }

func NewSender(bot *tgbotapi.BotAPI) *Sender { return &Sender{bot: bot} }

func (s *Sender) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := s.bot.Send(msg)
	return err
}

func (s *Sender) SendPNG(chatID int64, name string, png []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	_, err := s.bot.Send(photo)
	return err
}
