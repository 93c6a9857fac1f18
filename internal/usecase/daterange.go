package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"apix-lead-bot/internal/domain"
)

// ReportLocation — зона, в которой считаются ключи дневных корзин и
// отображаются даты. Фиксирована независимо от зоны сервера и часа
// планировщика.
var ReportLocation = mustLoadLocation("Europe/Kyiv")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

var (
	rangeRe = regexp.MustCompile(`(\d{1,2}\.\d{1,2}(?:\.\d{4})?)\s*[-–]\s*(\d{1,2}\.\d{1,2}(?:\.\d{4})?)`)
	dateRe  = regexp.MustCompile(`(\d{1,2}\.\d{1,2}(?:\.\d{4})?)`)
)

// ResolveRange разбирает аргумент команды /report в список ключей
// дневных корзин и подпись для отчёта.
//
// Грамматика: пусто или "сегодня" — сегодняшний день; "месяц" — с
// первого числа по сегодня; "Д1.М1-Д2.М2[.ГГГГ]" — период; "ДД.ММ[.ГГГГ]"
// — конкретный день (год по умолчанию текущий). Нераспознанный
// аргумент молча трактуется как "сегодня". Перепутанные границы
// периода меняются местами.
func ResolveRange(arg string, now time.Time) ([]string, string) {
	now = now.In(ReportLocation)
	text := strings.ToLower(strings.TrimSpace(arg))

	if text == "" || text == "сегодня" {
		return todayRange(now)
	}

	if strings.Contains(text, "месяц") {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, ReportLocation)
		return dayKeys(first, now), now.Format("January 2006")
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		d1, err1 := parseDay(m[1], now)
		d2, err2 := parseDay(m[2], now)
		if err1 == nil && err2 == nil {
			if d1.After(d2) {
				d1, d2 = d2, d1
			}
			label := fmt.Sprintf("%s–%s", d1.Format("02.01"), d2.Format("02.01.2006"))
			return dayKeys(d1, d2), label
		}
	}

	if m := dateRe.FindStringSubmatch(text); m != nil {
		if d, err := parseDay(m[1], now); err == nil {
			return []string{d.Format(domain.DayKeyLayout)}, d.Format("02.01.2006")
		}
	}

	return todayRange(now)
}

func todayRange(now time.Time) ([]string, string) {
	key := now.Format(domain.DayKeyLayout)
	return []string{key}, fmt.Sprintf("сегодня (%s)", now.Format("02.01.2006"))
}

// parseDay разбирает "ДД.ММ" или "ДД.ММ.ГГГГ"; без года подставляется
// текущий год.
func parseDay(s string, now time.Time) (time.Time, error) {
	if strings.Count(s, ".") == 1 {
		s = fmt.Sprintf("%s.%d", s, now.Year())
	}
	return time.ParseInLocation("2.1.2006", s, ReportLocation)
}

func dayKeys(from, to time.Time) []string {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, ReportLocation)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, ReportLocation)
	keys := make([]string, 0, 31)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(domain.DayKeyLayout))
	}
	return keys
}
