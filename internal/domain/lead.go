package domain

import "time"

// Placeholder подставляется вместо отсутствующих полей заявки и
// выводится в отчётах как есть.
const Placeholder = "—"

// Источники заявок
const (
	SourceMetaAds = "meta_ads"
	SourceSite    = "site"
)

// PlatformSite — фиксированная платформа для заявок с сайта.
const PlatformSite = "сайт"

// DayKeyLayout — формат ключа дневной корзины в хранилище.
const DayKeyLayout = "2006-01-02"

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Area      string    `json:"area"`
	Location  string    `json:"location"`
	Mount     string    `json:"mount"`
	Timing    string    `json:"timing"`
	Platform  string    `json:"platform"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// DayKey возвращает ключ корзины по дате создания заявки в зоне loc.
// Ключ считается всегда в одной и той же зоне, независимо от того,
// когда заявка была обработана.
func (l Lead) DayKey(loc *time.Location) string {
	return l.CreatedAt.In(loc).Format(DayKeyLayout)
}

// LeadStore — дневные корзины заявок. Порядок внутри корзины — порядок
// добавления. Get для отсутствующего ключа возвращает пустой срез.
type LeadStore interface {
	Append(dayKey string, lead Lead) error
	Get(dayKey string) []Lead
	Evict(dayKey string) error
}

// Абстракция отправки ответов (реализуется адаптером Telegram)
type ReplySender interface {
	SendMarkdown(chatID int64, text string) error
	SendPNG(chatID int64, name string, png []byte) error
}
