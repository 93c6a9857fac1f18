package usecase

import (
	"fmt"
	"sort"
	"strings"

	"apix-lead-bot/internal/domain"
)

// counter накапливает количество по ключам, запоминая порядок первого
// появления — он служит стабильным разрешением ничьих при сортировке.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// sorted возвращает ключи по убыванию количества; при равенстве
// сохраняется порядок первого появления.
func (c *counter) sorted() []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	return keys
}

// BuildReport собирает текстовый отчёт по набору заявок.
// Сначала дедупликация по номеру телефона (первое вхождение остаётся,
// повторы считаются дубликатами), затем группировки по городам,
// площади, платформам и источникам. Проценты считаются от итога после
// дедупликации.
func BuildReport(leads []domain.Lead, label string) string {
	if len(leads) == 0 {
		return fmt.Sprintf("📭 За %s заявок не поступало.", label)
	}

	seen := make(map[string]struct{}, len(leads))
	unique := make([]domain.Lead, 0, len(leads))
	duplicates := 0
	for _, l := range leads {
		phone := strings.TrimSpace(l.Phone)
		if _, ok := seen[phone]; ok {
			duplicates++
			continue
		}
		seen[phone] = struct{}{}
		unique = append(unique, l)
	}
	total := len(unique)

	cities := newCounter()
	areas := newCounter()
	platforms := newCounter()
	sources := newCounter()
	for _, l := range unique {
		cities.add(NormalizeCity(l.Location))
		areas.add(CleanArea(l.Area))
		platforms.add(strings.ToLower(l.Platform))
		sources.add(sourceLabel(l.Source))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Отчёт за %s*\n", label)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📥 Всего заявок: *%d*\n", total)
	if duplicates > 0 {
		fmt.Fprintf(&b, "♻️ Дубликатов: %d\n", duplicates)
	}
	b.WriteString("\n🏙 *Города:*\n")
	writeGroup(&b, cities, total)
	b.WriteString("\n📐 *Площадь:*\n")
	writeGroup(&b, areas, total)
	b.WriteString("\n📱 *Платформы:*\n")
	writeGroup(&b, platforms, total)
	b.WriteString("\n🌐 *Источники:*\n")
	writeGroup(&b, sources, total)
	return b.String()
}

func writeGroup(b *strings.Builder, c *counter, total int) {
	for _, key := range c.sorted() {
		n := c.counts[key]
		fmt.Fprintf(b, "  • %s — %d (%d%%)\n", EscapeMarkdown(key), n, roundPercent(n, total))
	}
}

func roundPercent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return (100*n + total/2) / total
}

func sourceLabel(source string) string {
	switch source {
	case domain.SourceMetaAds:
		return "META Ads"
	case domain.SourceSite:
		return "Сайт"
	default:
		return source
	}
}

// CityDistribution возвращает города и количества в порядке убывания —
// данные для построения диаграммы к отчёту.
func CityDistribution(leads []domain.Lead) ([]string, []int) {
	seen := make(map[string]struct{}, len(leads))
	cities := newCounter()
	for _, l := range leads {
		phone := strings.TrimSpace(l.Phone)
		if _, ok := seen[phone]; ok {
			continue
		}
		seen[phone] = struct{}{}
		cities.add(NormalizeCity(l.Location))
	}
	keys := cities.sorted()
	values := make([]int, len(keys))
	for i, k := range keys {
		values[i] = cities.counts[k]
	}
	return keys, values
}
