package weather

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

var (
	shortWeekdays = [7]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}
	longWeekdays  = [7]string{
		"domingo", "segunda-feira", "terça-feira", "quarta-feira",
		"quinta-feira", "sexta-feira", "sábado",
	}
)

// round is half-up rounding, so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// shortWeekdayLabel turns "2024-01-11" into "qui.". Unparseable dates are
// returned unchanged.
func shortWeekdayLabel(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return shortWeekdays[t.Weekday()]
}

// localDateTimeLabel formats the city-local wall clock for an epoch and a
// UTC offset, e.g. "quinta-feira, 14:05".
func localDateTimeLabel(epoch, offsetSeconds int64) string {
	t := time.Unix(epoch+offsetSeconds, 0).UTC()
	return fmt.Sprintf("%s, %s", longWeekdays[t.Weekday()], t.Format("15:04"))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	// Casers carry state, so one is built per call to keep this safe for
	// concurrent use.
	return cases.Upper(language.BrazilianPortuguese).String(string(r)) + s[size:]
}

func percentLabel(prefix string, percent float64) string {
	return fmt.Sprintf("%s: %d%%", prefix, round(percent))
}
