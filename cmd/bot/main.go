package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	_ "time/tzdata"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	telegramAdapter "apix-lead-bot/internal/adapter/telegram"
	"apix-lead-bot/internal/domain"
	"apix-lead-bot/internal/infra/jsonstore"
	sqliteStore "apix-lead-bot/internal/infra/sqlite"
	"apix-lead-bot/internal/usecase"
)

const defaultReportHourUTC = 18 // 20:00 по Киеву

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"))

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logger.Error("переменная окружения BOT_TOKEN не задана")
		os.Exit(1)
	}

	go func() {
		_ = http.ListenAndServe(":8080", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("ошибка создания бота", "error", err)
		os.Exit(1)
	}
	bot.Debug = false
	logger.Info("авторизован", "username", bot.Self.UserName)

	store, err := newStore(logger)
	if err != nil {
		logger.Error("ошибка инициализации хранилища", "error", err)
		os.Exit(1)
	}

	charts := telegramAdapter.NewCharts()
	handler := telegramAdapter.NewHandler(bot, store, charts, logger)
	if raw := strings.TrimSpace(os.Getenv("REPORT_CHAT_ID")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			handler.SetChatID(id)
		}
	}

	daily := usecase.NewDailyReport(store, telegramAdapter.NewSender(bot), charts, logger)
	sched, err := usecase.NewScheduler(reportHourUTC(), func() { daily.Send(handler.ChatID()) }, logger)
	if err != nil {
		logger.Error("ошибка планировщика", "error", err)
		os.Exit(1)
	}
	handler.SetScheduler(sched)
	sched.Start()

	logger.Info("бот запущен")
	handler.Run()
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	if strings.EqualFold(level, "debug") {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newStore выбирает бэкенд: SQLite при заданном LEADS_SQLITE_DSN,
// иначе JSON-файл.
func newStore(logger *slog.Logger) (domain.LeadStore, error) {
	if dsn := os.Getenv("LEADS_SQLITE_DSN"); dsn != "" {
		return sqliteStore.NewLeadStore(dsn)
	}
	path := os.Getenv("LEADS_FILE")
	if path == "" {
		path = "leads.json"
	}
	return jsonstore.New(path, logger)
}

func reportHourUTC() int {
	raw := strings.TrimSpace(os.Getenv("REPORT_HOUR_UTC"))
	if raw == "" {
		return defaultReportHourUTC
	}
	if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
		return h
	}
	return defaultReportHourUTC
}
