package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID         string    `bun:"id,pk" json:"id"`
	Title      string    `bun:"title,nullzero" json:"title,omitempty"`
	Subtitle   string    `bun:"subtitle,nullzero" json:"subtitle,omitempty"`
	DJName     string    `bun:"dj_name,notnull" json:"dj_name"`
	EventDate  string    `bun:"event_date,notnull" json:"event_date"` // YYYY-MM-DD, venue-local civil date
	EventTime  string    `bun:"event_time,nullzero" json:"event_time,omitempty"`
	Genre      string    `bun:"genre,nullzero" json:"genre,omitempty"`
	ImageURL   string    `bun:"image_url,nullzero" json:"image_url,omitempty"`
	SpotifyURL string    `bun:"spotify_url,nullzero" json:"spotify_url,omitempty"`
	Promotion  string    `bun:"promotion,nullzero" json:"promotion,omitempty"`
	Featured   bool      `bun:"featured,notnull" json:"featured"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

// DisplayTitle falls back to the DJ name when an event has no own title.
func (e Event) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.DJName
}

type EventRequest struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	DJName     string `json:"dj_name"`
	EventDate  string `json:"event_date"`
	EventTime  string `json:"event_time"`
	Genre      string `json:"genre"`
	ImageURL   string `json:"image_url"`
	SpotifyURL string `json:"spotify_url"`
	Promotion  string `json:"promotion"`
	Featured   bool   `json:"featured"`
}
