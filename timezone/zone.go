package timezone

import (
	"regexp"
	"strings"
)

// MinCityLength is the shortest normalized input the resolver accepts.
const MinCityLength = 3

const (
	txtSuggestionsHeader = "Возможно, вы имели в виду один из этих городов:\n"
	txtTooShort          = "Пожалуйста, введите название города (минимум 3 буквы)."
	txtCityNotFound      = "Извините, не могу найти указанный город. Пожалуйста, попробуйте еще раз или введите ближайший крупный город."
)

const maxSuggestions = 5

type city struct {
	name string
	tz   string
}

// cities maps canonical city names and their aliases to IANA zone
// identifiers. The slice keeps insertion order: the containment scan in
// FindZoneByCity walks it top to bottom and the first match wins, so lookups
// stay deterministic. Aliases follow their canonical name.
var cities = []city{
	// Moscow Time (UTC+3)
	{"москва", "Europe/Moscow"},
	{"мск", "Europe/Moscow"},
	{"moscow", "Europe/Moscow"},
	{"санкт-петербург", "Europe/Moscow"},
	{"питер", "Europe/Moscow"},
	{"спб", "Europe/Moscow"},
	{"санкт петербург", "Europe/Moscow"},
	{"saint petersburg", "Europe/Moscow"},
	{"нижний новгород", "Europe/Moscow"},
	{"нижний", "Europe/Moscow"},
	{"ростов-на-дону", "Europe/Moscow"},
	{"ростов на дону", "Europe/Moscow"},
	{"ростов", "Europe/Moscow"},
	{"казань", "Europe/Moscow"},
	{"воронеж", "Europe/Moscow"},
	{"краснодар", "Europe/Moscow"},
	{"сочи", "Europe/Moscow"},
	{"калининград", "Europe/Kaliningrad"},
	{"мурманск", "Europe/Moscow"},
	{"архангельск", "Europe/Moscow"},
	{"ярославль", "Europe/Moscow"},
	{"тверь", "Europe/Moscow"},
	{"тула", "Europe/Moscow"},
	{"рязань", "Europe/Moscow"},
	{"саратов", "Europe/Saratov"},
	{"волгоград", "Europe/Volgograd"},
	{"астрахань", "Europe/Astrakhan"},
	{"севастополь", "Europe/Moscow"},
	{"симферополь", "Europe/Moscow"},
	{"ялта", "Europe/Moscow"},

	// Samara Time (UTC+4)
	{"самара", "Europe/Samara"},
	{"ижевск", "Europe/Samara"},
	{"ульяновск", "Europe/Samara"},
	{"тольятти", "Europe/Samara"},
	{"оренбург", "Asia/Yekaterinburg"},

	// Yekaterinburg Time (UTC+5)
	{"екатеринбург", "Asia/Yekaterinburg"},
	{"екб", "Asia/Yekaterinburg"},
	{"пермь", "Asia/Yekaterinburg"},
	{"уфа", "Asia/Yekaterinburg"},
	{"челябинск", "Asia/Yekaterinburg"},
	{"тюмень", "Asia/Yekaterinburg"},
	{"сургут", "Asia/Yekaterinburg"},
	{"нижневартовск", "Asia/Yekaterinburg"},
	{"курган", "Asia/Yekaterinburg"},

	// Omsk Time (UTC+6)
	{"омск", "Asia/Omsk"},
	{"новый уренгой", "Asia/Yekaterinburg"},

	// Novosibirsk Time (UTC+7)
	{"новосибирск", "Asia/Novosibirsk"},
	{"нск", "Asia/Novosibirsk"},
	{"томск", "Asia/Tomsk"},
	{"кемерово", "Asia/Novokuznetsk"},
	{"барнаул", "Asia/Barnaul"},
	{"новокузнецк", "Asia/Novokuznetsk"},
	{"красноярск", "Asia/Krasnoyarsk"},

	// Irkutsk Time (UTC+8)
	{"иркутск", "Asia/Irkutsk"},
	{"улан-удэ", "Asia/Irkutsk"},
	{"улан удэ", "Asia/Irkutsk"},
	{"чита", "Asia/Chita"},
	{"братск", "Asia/Irkutsk"},

	// Yakutsk Time (UTC+9)
	{"якутск", "Asia/Yakutsk"},
	{"благовещенск", "Asia/Yakutsk"},
	{"нерюнгри", "Asia/Yakutsk"},

	// Vladivostok Time (UTC+10)
	{"владивосток", "Asia/Vladivostok"},
	{"хабаровск", "Asia/Vladivostok"},
	{"южно-сахалинск", "Asia/Sakhalin"},
	{"южно сахалинск", "Asia/Sakhalin"},
	{"находка", "Asia/Vladivostok"},
	{"уссурийск", "Asia/Vladivostok"},

	// Magadan Time (UTC+11)
	{"магадан", "Asia/Magadan"},

	// Kamchatka Time (UTC+12)
	{"петропавловск-камчатский", "Asia/Kamchatka"},
	{"петропавловск камчатский", "Asia/Kamchatka"},
}

// cityIndex backs the exact-match lookup.
var cityIndex = func() map[string]string {
	idx := make(map[string]string, len(cities))
	for _, c := range cities {
		idx[c.name] = c.tz
	}
	return idx
}()

var (
	reNonLetter = regexp.MustCompile(`[^а-яa-z\s-]`)
	reSpaces    = regexp.MustCompile(`\s+`)
	reHasLetter = regexp.MustCompile(`[а-яa-z]`)
)

// normalize folds the input to the table's canonical form: lowercase, «ё»
// replaced with «е», anything that is not a letter, space or hyphen removed,
// internal whitespace collapsed.
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "ё", "е")
	s = reNonLetter.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsValidCityInput reports whether the text is worth looking up at all:
// at least MinCityLength characters after normalization and at least one
// letter.
func IsValidCityInput(name string) bool {
	norm := normalize(name)
	return len([]rune(norm)) >= MinCityLength && reHasLetter.MatchString(norm)
}

// FindZoneByCity resolves a city name to an IANA zone identifier. An exact
// match against a canonical name or alias wins; otherwise the table is
// scanned in order for containment in either direction and the first hit
// wins. Either side may be the substring, so a short valid input can match a
// longer table entry; that matches the original lookup and is intentional.
func FindZoneByCity(name string) (string, bool) {
	if !IsValidCityInput(name) {
		return "", false
	}

	norm := normalize(name)
	if tz, ok := cityIndex[norm]; ok {
		return tz, true
	}

	for _, c := range cities {
		if strings.Contains(c.name, norm) || strings.Contains(norm, c.name) {
			return c.tz, true
		}
	}

	return "", false
}

// IsValidCity reports whether the name resolves to a known city.
func IsValidCity(name string) bool {
	_, ok := FindZoneByCity(name)
	return ok
}

// Suggest collects up to 5 table entries matching the input by containment,
// in table order.
func Suggest(name string) []string {
	if !IsValidCityInput(name) {
		return nil
	}

	norm := normalize(name)
	var found []string
	for _, c := range cities {
		if strings.Contains(c.name, norm) || strings.Contains(norm, c.name) {
			found = append(found, c.name)
			if len(found) >= maxSuggestions {
				break
			}
		}
	}

	return found
}

// SuggestMessage builds the user-facing reply for a city that didn't
// resolve: a bullet list of candidates, or a fixed message when there is
// nothing to offer.
func SuggestMessage(name string) string {
	if !IsValidCityInput(name) {
		return txtTooShort
	}

	found := Suggest(name)
	if len(found) == 0 {
		return txtCityNotFound
	}

	var sb strings.Builder
	sb.Grow(len(txtSuggestionsHeader) + 32*len(found))
	sb.WriteString(txtSuggestionsHeader)
	for _, c := range found {
		sb.WriteString("• ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	return sb.String()
}
