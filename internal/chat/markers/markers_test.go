package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlainProse(t *testing.T) {
	e := &Extractor{}
	res := e.Extract("¡Hola! Bienvenido a Obsidian Social Club.")

	assert.Equal(t, "¡Hola! Bienvenido a Obsidian Social Club.", res.Prose)
	assert.Nil(t, res.Reservation)
	assert.Empty(t, res.EventCards)
	assert.False(t, res.MenuButton)
}

func TestExtractReservation(t *testing.T) {
	e := &Extractor{}
	raw := `¡Perfecto! Registro tu reservación.
[RESERVACION_DATA]
{"name": "Carlos", "phone": "8661234567", "date": "2026-09-05", "guests": 4, "tableType": "general"}
[/RESERVACION_DATA]
Te esperamos.`

	res := e.Extract(raw)

	if assert.NotNil(t, res.Reservation) {
		assert.Equal(t, "Carlos", res.Reservation.Name)
		assert.Equal(t, "8661234567", res.Reservation.Phone)
		assert.Equal(t, "2026-09-05", res.Reservation.Date)
		assert.Equal(t, 4, res.Reservation.Guests)
		assert.Equal(t, "general", res.Reservation.TableType)
	}
	assert.NotContains(t, res.Prose, "[RESERVACION_DATA]")
	assert.Contains(t, res.Prose, "Registro tu reservación")
	assert.Contains(t, res.Prose, "Te esperamos")
}

func TestExtractEventCards(t *testing.T) {
	e := &Extractor{}
	raw := `Este fin de semana tenemos:
[EVENT_CARD]{"dj_name": "DJ Nexus", "event_date": "2026-09-05", "genre": "Techno"}[/EVENT_CARD]
[EVENT_CARD]{"dj_name": "DJ Luna", "event_date": "2026-09-06", "genre": "Reggaetón"}[/EVENT_CARD]`

	res := e.Extract(raw)

	if assert.Len(t, res.EventCards, 2) {
		assert.Equal(t, "DJ Nexus", res.EventCards[0].DJName)
		assert.Equal(t, "DJ Luna", res.EventCards[1].DJName)
	}
	assert.Equal(t, "Este fin de semana tenemos:", res.Prose)
}

func TestExtractMenuButton(t *testing.T) {
	e := &Extractor{}
	res := e.Extract("Aquí puedes ver nuestro menú completo: [MENU_BUTTON]")

	assert.True(t, res.MenuButton)
	assert.Equal(t, "Aquí puedes ver nuestro menú completo:", res.Prose)
}

func TestExtractMalformedReservationDropped(t *testing.T) {
	var warned []string
	e := &Extractor{Warn: func(msg string) { warned = append(warned, msg) }}

	raw := "Claro. [RESERVACION_DATA]{not json}[/RESERVACION_DATA] ¿Algo más?"
	res := e.Extract(raw)

	assert.Nil(t, res.Reservation)
	assert.Len(t, warned, 1)
	// The broken block still disappears from the prose.
	assert.Equal(t, "Claro.  ¿Algo más?", res.Prose)
}

func TestExtractDuplicateReservationFirstWins(t *testing.T) {
	var warned []string
	e := &Extractor{Warn: func(msg string) { warned = append(warned, msg) }}

	raw := `[RESERVACION_DATA]{"name": "Ana", "phone": "1", "date": "2026-09-05", "guests": 2}[/RESERVACION_DATA]
[RESERVACION_DATA]{"name": "Luis", "phone": "2", "date": "2026-09-06", "guests": 3}[/RESERVACION_DATA]`

	res := e.Extract(raw)

	if assert.NotNil(t, res.Reservation) {
		assert.Equal(t, "Ana", res.Reservation.Name)
	}
	assert.Len(t, warned, 1)
	assert.Empty(t, res.Prose)
}

func TestExtractUnterminatedBlockLeftInProse(t *testing.T) {
	e := &Extractor{}
	raw := `Un momento... [RESERVACION_DATA]{"name": "Eva"`

	res := e.Extract(raw)

	assert.Nil(t, res.Reservation)
	assert.Contains(t, res.Prose, "[RESERVACION_DATA]")
}

func TestExtractMixedMarkers(t *testing.T) {
	e := &Extractor{}
	raw := `Tenemos esto:
[EVENT_CARD]{"dj_name": "DJ Nexus", "event_date": "2026-09-05"}[/EVENT_CARD]
Y el menú: [MENU_BUTTON]
[RESERVACION_DATA]{"name": "Carlos", "phone": "866", "date": "2026-09-05", "guests": 2}[/RESERVACION_DATA]`

	res := e.Extract(raw)

	assert.NotNil(t, res.Reservation)
	assert.Len(t, res.EventCards, 1)
	assert.True(t, res.MenuButton)
	assert.NotContains(t, res.Prose, "[")
}
