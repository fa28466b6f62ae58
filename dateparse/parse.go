// Package dateparse turns free-text Russian date expressions into absolute
// points in time: the fixed dd/MM/yy layout, the сегодня/завтра/послезавтра
// keywords, weekday names and relative «через N ...» expressions.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the absolute date format the parser accepts and the format
// reminders are stored and shown in.
const Layout = "02/01/06 15:04"

// layoutDateOnly accepts a bare date; the time defaults to midnight.
const layoutDateOnly = "02/01/06"

const usageMessage = `Неверный формат даты. Используйте:
- dd/MM/yy HH:mm (например, 25/12/23 15:30)
- сегодня, завтра, послезавтра
- день недели (например, понедельник)
- через X дней/часов/минут`

// relativeMarker introduces a relative date expression.
const relativeMarker = "через"

// InvalidFormatError means the input matched none of the supported forms.
// The message is shown to the user as-is.
type InvalidFormatError struct {
	msg string
}

func (e *InvalidFormatError) Error() string {
	return e.msg
}

func invalidFormat() *InvalidFormatError {
	return &InvalidFormatError{msg: usageMessage}
}

var keywordOffsets = map[string]int{
	"сегодня":     0,
	"завтра":      1,
	"послезавтра": 2,
}

var weekdays = map[string]time.Weekday{
	"понедельник": time.Monday,
	"вторник":     time.Tuesday,
	"среда":       time.Wednesday,
	"четверг":     time.Thursday,
	"пятница":     time.Friday,
	"суббота":     time.Saturday,
	"воскресенье": time.Sunday,
}

// unitDurations lists the accepted unit inflections for minutes and hours.
// Days are calendar days and handled separately.
var unitDurations = map[string]time.Duration{
	"минут":  time.Minute,
	"минуты": time.Minute,
	"минуту": time.Minute,
	"часов":  time.Hour,
	"часа":   time.Hour,
	"час":    time.Hour,
}

var dayUnits = map[string]bool{
	"дней": true,
	"дня":  true,
	"день": true,
}

// Parse converts the user's text into an absolute time in loc. The attempts
// run in a fixed order and the first success wins: the absolute layout, the
// day keywords, a weekday name, a relative expression. Keyword and weekday
// results are pinned to 12:00 regardless of any time the user supplied.
// On failure the returned error is an *InvalidFormatError whose text is the
// reply to show the user.
func Parse(input string, loc *time.Location, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if t, err := time.ParseInLocation(Layout, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateOnly, input, loc); err == nil {
		return t, nil
	}

	if days, ok := keywordOffsets[input]; ok {
		return atNoon(now.AddDate(0, 0, days), loc), nil
	}

	if target, ok := weekdays[input]; ok {
		return nextWeekday(now, target, loc), nil
	}

	if strings.Contains(input, relativeMarker) {
		return parseRelative(input, now)
	}

	return time.Time{}, invalidFormat()
}

// IsValid reports whether the input parses as a date expression.
func IsValid(input string, loc *time.Location, now time.Time) bool {
	_, err := Parse(input, loc, now)
	return err == nil
}

// atNoon drops the time-of-day component and pins the result to 12:00:00.
func atNoon(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
}

// nextWeekday finds the next occurrence of the target weekday at 12:00,
// strictly after now. When today already is the target weekday the result
// rolls a full week forward, never the same day.
func nextWeekday(now time.Time, target time.Weekday, loc *time.Location) time.Time {
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return atNoon(now.AddDate(0, 0, days), loc)
}

// parseRelative handles «через N единиц»: at least three fields, the second
// a non-negative base-10 amount, the third a unit word from the closed sets
// above.
func parseRelative(input string, now time.Time) (time.Time, error) {
	parts := strings.Fields(input)
	if len(parts) < 3 {
		return time.Time{}, invalidFormat()
	}

	amount, err := strconv.Atoi(parts[1])
	if err != nil || amount < 0 {
		return time.Time{}, invalidFormat()
	}

	unit := parts[2]
	if d, ok := unitDurations[unit]; ok {
		return now.Add(time.Duration(amount) * d), nil
	}
	if dayUnits[unit] {
		return now.AddDate(0, 0, amount), nil
	}

	return time.Time{}, &InvalidFormatError{msg: fmt.Sprintf("Неподдерживаемая единица времени: %s", unit)}
}
