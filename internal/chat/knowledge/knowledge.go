// Package knowledge renders the point-in-time store snapshot that gets
// injected into the assistant's system prompt.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

// UpcomingEventsLimit caps how many events are pushed into the prompt.
const UpcomingEventsLimit = 10

// Fallback blocks. A store failure or an empty table must never surface as
// "no data" to the guest, so these stand in for live rows.
const (
	eventsFallback = `### PRÓXIMOS EVENTOS:
Próximamente anunciaremos nuevos eventos. Mantente atento a nuestras redes sociales.`

	menuFallback = `### MENÚ DESTACADO:
CÓCTELES SIGNATURE:
- Obsidian Noir (vodka, licor de mora, espuma de carbón) - $180
- Midnight Martini (gin, vermouth, aceitunas negras) - $160
- Shadow Kiss (ron, maracuyá, albahaca) - $150

SHOTS:
- Black Diamond (tequila, licor de café, crema) - $90
- Dark Matter (mezcal, chamoy, tamarindo) - $85

BOTELLAS:
- Grey Goose - $2,500
- Don Julio 70 - $3,200
- Moët & Chandon - $4,500`
)

type EventSource interface {
	Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error)
}

type MenuSource interface {
	AvailableItems(ctx context.Context) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]models.MenuCategory, error)
}

// Builder assembles the two knowledge blocks fresh on every chat request.
type Builder struct {
	Events   EventSource
	Menu     MenuSource
	Location *time.Location
	Warn     func(message string)
}

func (b *Builder) warn(msg string) {
	if b.Warn != nil {
		b.Warn(msg)
	}
}

// EventsBlock renders the upcoming events for the venue's current civil day.
// Each event gets a human-readable line plus a compact JSON fragment the
// prompt instructs the model to echo verbatim inside [EVENT_CARD] markers.
func (b *Builder) EventsBlock(ctx context.Context, now time.Time) string {
	today := utils.CivilDate(now, b.Location)

	events, err := b.Events.Upcoming(ctx, today, UpcomingEventsLimit)
	if err != nil {
		b.warn("events query failed, using fallback block: " + err.Error())
		return eventsFallback
	}
	if len(events) == 0 {
		return eventsFallback
	}

	var lines []string
	for _, e := range events {
		card := models.EventCard{
			Title:      e.DisplayTitle(),
			DJName:     e.DJName,
			EventDate:  e.EventDate,
			Genre:      e.Genre,
			ImageURL:   e.ImageURL,
			SpotifyURL: e.SpotifyURL,
			Promotion:  e.Promotion,
		}
		cardJSON, err := json.Marshal(card)
		if err != nil {
			b.warn("skipping unrenderable event " + e.ID + ": " + err.Error())
			continue
		}

		line := fmt.Sprintf("- EVENTO: %q | DJ: %s | Fecha: %s (%s)",
			e.DisplayTitle(), e.DJName, utils.FormatSpanishDate(e.EventDate), e.EventDate)
		if e.Genre != "" {
			line += " | Género: " + e.Genre
		}
		if e.Promotion != "" {
			line += " | Promoción: " + e.Promotion
		}
		line += "\n  JSON para EVENT_CARD: " + string(cardJSON)
		lines = append(lines, line)
	}

	return "### PRÓXIMOS EVENTOS Y DJs:\n" + strings.Join(lines, "\n\n")
}

// MenuBlock renders available items grouped by category in display order,
// one "name (description) - price" line per item.
func (b *Builder) MenuBlock(ctx context.Context) string {
	items, err := b.Menu.AvailableItems(ctx)
	if err != nil {
		b.warn("menu query failed, using fallback block: " + err.Error())
		return menuFallback
	}
	if len(items) == 0 {
		return menuFallback
	}

	categories, err := b.Menu.Categories(ctx)
	if err != nil || len(categories) == 0 {
		categories = models.DefaultCategories
	}

	byCategory := make(map[string][]models.MenuItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var sb strings.Builder
	sb.WriteString("### MENÚ ACTUAL:\n")
	for _, cat := range categories {
		group := byCategory[cat.ID]
		if len(group) == 0 {
			continue
		}
		delete(byCategory, cat.ID)
		writeCategory(&sb, strings.ToUpper(cat.Name), group)
	}
	// Items referencing a category that no longer exists still show up.
	for slug, group := range byCategory {
		writeCategory(&sb, strings.ToUpper(slug), group)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeCategory(sb *strings.Builder, heading string, items []models.MenuItem) {
	sb.WriteString("\n" + heading + ":\n")
	for _, item := range items {
		sb.WriteString("- " + item.Name)
		if item.Description != "" {
			sb.WriteString(" (" + item.Description + ")")
		}
		fmt.Fprintf(sb, " - $%s\n", formatPrice(item.Price))
	}
}

// formatPrice drops trailing zero cents so "180" prints as on the carta.
func formatPrice(price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("%d", int64(price))
	}
	return fmt.Sprintf("%.2f", price)
}
