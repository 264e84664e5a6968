package utils

import (
	"fmt"
	"time"
)

// DateLayout is the civil-date wire format used across reservations, events
// and the assistant's marker payloads.
const DateLayout = "2006-01-02"

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// CivilDate converts an instant to the venue's civil calendar date. The
// venue's "today" is what decides whether an event is still upcoming, not the
// caller's or the server's UTC day.
func CivilDate(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// FormatSpanishDate renders a YYYY-MM-DD date as "viernes 7 de febrero".
// Unparseable input is returned unchanged so a bad row never breaks a prompt.
func FormatSpanishDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d de %s", spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1])
}

// FormatSpanishDateWithYear renders "viernes 7 de febrero de 2026", the form
// the system prompt uses for the current date.
func FormatSpanishDateWithYear(t time.Time) string {
	return fmt.Sprintf("%s %d de %s de %d", spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
}
