package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Cócteles":           "cocteles",
		"Cócteles de Autor":  "cocteles-de-autor",
		"Shots":              "shots",
		"  Botellas  VIP  ":  "botellas-vip",
		"Año Nuevo / 2027!!": "ano-nuevo-2027",
		"¡¡¡":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestCivilDate(t *testing.T) {
	monterrey, err := time.LoadLocation("America/Mexico_City")
	assert.NoError(t, err)

	// 05:00 UTC on the 4th is still 23:00 on the 3rd at the venue.
	instant := time.Date(2026, 9, 4, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-03", CivilDate(instant, monterrey))

	noon := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-04", CivilDate(noon, monterrey))
}

func TestFormatSpanishDate(t *testing.T) {
	assert.Equal(t, "sábado 5 de septiembre", FormatSpanishDate("2026-09-05"))
	assert.Equal(t, "viernes 1 de enero", FormatSpanishDate("2027-01-01"))
	// Unparseable input passes through so prompts never break.
	assert.Equal(t, "pronto", FormatSpanishDate("pronto"))
}

func TestFormatSpanishDateWithYear(t *testing.T) {
	d := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "jueves 31 de diciembre de 2026", FormatSpanishDateWithYear(d))
}
