package usecase

import (
	"regexp"
	"strings"
	"time"

	"apix-lead-bot/internal/domain"
)

// Формат уведомления определяется по сигнатурной подстроке. Поля
// извлекаются независимо друг от друга: отсутствие метки одного поля
// не мешает извлечь остальные, вместо отсутствующего подставляется
// domain.Placeholder.

const (
	sigMetaAds = "Новый лид из META Ads"
	sigSite    = "Нова заявка з сайту"
)

type fieldRule struct {
	field   string
	pattern *regexp.Regexp
}

type leadFormat struct {
	signature string
	source    string
	// platform пустая — платформа извлекается из текста по правилу,
	// иначе подставляется фиксированное значение формата
	platform string
	rules    []fieldRule
	// dateRule не обязателен; если метка даты есть и дата валидна,
	// она становится CreatedAt заявки
	dateRule *regexp.Regexp
}

func line(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)` + label + `[:\s]+(.+)`)
}

func question(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)` + label + `[?\s]*\n?(.+)`)
}

var leadFormats = []leadFormat{
	{
		signature: sigMetaAds,
		source:    domain.SourceMetaAds,
		rules: []fieldRule{
			{"name", line(`Имя`)},
			{"phone", line(`Номер телефона`)},
			{"area", line(`Площадь помещения`)},
			{"location", line(`Локация`)},
			{"mount", question(`Как будут крепиться шторы`)},
			{"timing", question(`Когда планируете установку`)},
			{"platform", line(`Платформа`)},
		},
	},
	{
		signature: sigSite,
		source:    domain.SourceSite,
		platform:  domain.PlatformSite,
		rules: []fieldRule{
			{"name", line(`Ім['` + "`" + `]?я`)},
			{"phone", line(`Номер[_ ]телефону`)},
			{"area", line(`Площа`)},
			{"location", line(`Місто`)},
			{"mount", question(`Як кріпитимуться штори`)},
			{"timing", question(`Коли планують установку`)},
		},
		dateRule: regexp.MustCompile(`(?im)Дата[:\s]+(\d{1,2}\.\d{1,2}\.\d{4})`),
	},
}

// ParseLead распознаёт текст уведомления и собирает заявку.
// Возвращает false, если текст не содержит сигнатуру ни одного
// формата — это не ошибка, а обычное сообщение в чате.
func ParseLead(text string, now time.Time) (domain.Lead, bool) {
	for _, f := range leadFormats {
		if strings.Contains(text, f.signature) {
			return f.extract(text, now), true
		}
	}
	return domain.Lead{}, false
}

func (f leadFormat) extract(text string, now time.Time) domain.Lead {
	fields := map[string]string{
		"name":     domain.Placeholder,
		"phone":    domain.Placeholder,
		"area":     domain.Placeholder,
		"location": domain.Placeholder,
		"mount":    domain.Placeholder,
		"timing":   domain.Placeholder,
		"platform": domain.Placeholder,
	}
	for _, r := range f.rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				fields[r.field] = v
			}
		}
	}
	if f.platform != "" {
		fields["platform"] = f.platform
	}

	createdAt := now.In(ReportLocation)
	if f.dateRule != nil {
		if m := f.dateRule.FindStringSubmatch(text); m != nil {
			if d, err := time.ParseInLocation("2.1.2006", m[1], ReportLocation); err == nil {
				createdAt = d
			}
		}
	}

	return domain.Lead{
		Name:      fields["name"],
		Phone:     fields["phone"],
		Area:      fields["area"],
		Location:  fields["location"],
		Mount:     fields["mount"],
		Timing:    fields["timing"],
		Platform:  fields["platform"],
		Source:    f.source,
		CreatedAt: createdAt,
	}
}
