package usecase

import (
	"strings"
	"unicode"
)

// cityCanon — таблица канонических названий городов. Ключ — нижний
// регистр без подчёркиваний и дефисов; покрывает украинские, русские и
// транслитерированные варианты. Каждое каноническое значение обязано
// отображаться само в себя.
var cityCanon = map[string]string{
	"київ": "Київ",
	"киев": "Київ",
	"kyiv": "Київ",
	"kiev": "Київ",

	"харків":  "Харків",
	"харьков": "Харків",
	"kharkiv": "Харків",
	"kharkov": "Харків",

	"одеса":  "Одеса",
	"одесса": "Одеса",
	"odesa":  "Одеса",
	"odessa": "Одеса",

	"дніпро": "Дніпро",
	"днепр":  "Дніпро",
	"днипро": "Дніпро",
	"dnipro": "Дніпро",

	"львів": "Львів",
	"львов": "Львів",
	"lviv":  "Львів",
	"lvov":  "Львів",

	"запоріжжя":    "Запоріжжя",
	"запорожье":    "Запоріжжя",
	"zaporizhzhia": "Запоріжжя",
	"zaporozhye":   "Запоріжжя",

	"вінниця":   "Вінниця",
	"винница":   "Вінниця",
	"vinnytsia": "Вінниця",

	"полтава": "Полтава",
	"poltava": "Полтава",

	"ірпінь": "Ірпінь",
	"ирпень": "Ірпінь",
	"irpin":  "Ірпінь",

	"буча":  "Буча",
	"bucha": "Буча",

	"бровари": "Бровари",
	"бровары": "Бровари",
	"brovary": "Бровари",
}

// NormalizeCity приводит сырую строку локации к каноническому названию
// города. Сначала табличный поиск без учёта регистра, подчёркиваний и
// дефисов; при промахе — заголовочный регистр исходной строки.
// Никакого нечёткого сопоставления.
func NormalizeCity(raw string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	key := strings.ToLower(cleaned)
	if canon, ok := cityCanon[key]; ok {
		return canon
	}
	return titleCase(cleaned)
}

// CleanArea убирает хвостовые подчёркивания и пробелы у метки площади.
func CleanArea(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "_")
	return strings.TrimSpace(s)
}

// EscapeMarkdown экранирует спецсимволы Telegram Markdown. Применяется
// один раз к каждому вхождению, не рекурсивно.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func titleCase(s string) string {
	prevSpace := true
	return strings.Map(func(r rune) rune {
		if prevSpace {
			prevSpace = unicode.IsSpace(r)
			return unicode.ToUpper(r)
		}
		prevSpace = unicode.IsSpace(r)
		return unicode.ToLower(r)
	}, s)
}
