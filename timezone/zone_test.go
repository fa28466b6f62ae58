package timezone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindZoneByCityExact(t *testing.T) {
	cases := map[string]string{
		"москва":          "Europe/Moscow",
		"Москва":          "Europe/Moscow",
		"  МОСКВА  ":      "Europe/Moscow",
		"moscow":          "Europe/Moscow",
		"мск":             "Europe/Moscow",
		"спб":             "Europe/Moscow",
		"санкт-петербург": "Europe/Moscow",
		"санкт петербург": "Europe/Moscow",
		"екб":             "Asia/Yekaterinburg",
		"калининград":     "Europe/Kaliningrad",
		"новосибирск":     "Asia/Novosibirsk",
		"владивосток":     "Asia/Vladivostok",
		"петропавловск-камчатский": "Asia/Kamchatka",
	}

	for input, want := range cases {
		tz, ok := FindZoneByCity(input)
		require.True(t, ok, "expected %q to resolve", input)
		assert.Equal(t, want, tz, "input %q", input)
	}
}

func TestFindZoneByCityNormalization(t *testing.T) {
	// punctuation and digits are stripped, whitespace collapsed
	tz, ok := FindZoneByCity("  Москва!!! 123 ")
	require.True(t, ok)
	assert.Equal(t, "Europe/Moscow", tz)

	// «ё» folds to «е»
	tz, ok = FindZoneByCity("Орёл-не-город-из-таблицы")
	assert.False(t, ok, "unexpected match: %q", tz)
}

func TestFindZoneByCityContainment(t *testing.T) {
	// input is a prefix of a table key
	tz, ok := FindZoneByCity("мос")
	require.True(t, ok)
	assert.Equal(t, "Europe/Moscow", tz)

	// table key is a substring of the input: the scan is bidirectional,
	// and the «мск» alias wins over «омск» by table order
	tz, ok = FindZoneByCity("город омск")
	require.True(t, ok)
	assert.Equal(t, "Europe/Moscow", tz)

	// first match in table order wins, deterministically
	tz, ok = FindZoneByCity("ново")
	require.True(t, ok)
	assert.Equal(t, "Asia/Novosibirsk", tz, "новосибирск is the first table entry containing «ново»")
}

func TestFindZoneByCityNotFound(t *testing.T) {
	for _, input := range []string{"", "  ", "ab", "xyzqw", "123", "!!!"} {
		_, ok := FindZoneByCity(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestIsValidCity(t *testing.T) {
	assert.True(t, IsValidCity("мос"))
	assert.True(t, IsValidCity("Казань"))
	assert.False(t, IsValidCity("ab"))
	assert.False(t, IsValidCity("ом")) // below the length floor even though «омск» exists
	assert.False(t, IsValidCity("лондон"))
}

func TestIsValidCityInput(t *testing.T) {
	assert.True(t, IsValidCityInput("мск"))
	assert.True(t, IsValidCityInput("  скм  ")) // any letters count, not just known cities
	assert.False(t, IsValidCityInput("12"))
	assert.False(t, IsValidCityInput("1234")) // digits are stripped, nothing remains
	assert.False(t, IsValidCityInput("яя"))
}

func TestSuggest(t *testing.T) {
	found := Suggest("ростов")
	require.NotEmpty(t, found)
	assert.Equal(t, "ростов-на-дону", found[0], "table order is preserved")

	// more than five candidates are cut off at five, in table order
	found = Suggest("уфа омск чита тула сочи екб мск")
	require.Len(t, found, 5)
	assert.Equal(t, "мск", found[0])

	assert.Empty(t, Suggest("лондон"))
}

func TestSuggestMessage(t *testing.T) {
	msg := SuggestMessage("ростов")
	assert.True(t, strings.HasPrefix(msg, txtSuggestionsHeader))
	assert.Contains(t, msg, "• ростов-на-дону\n")

	assert.Equal(t, txtCityNotFound, SuggestMessage("лондон"))
	assert.Equal(t, txtTooShort, SuggestMessage("аб"))
}
