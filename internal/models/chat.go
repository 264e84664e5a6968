package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Chat roles accepted in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one turn of a conversation. History lives in the client
// session only; it is never persisted as-is.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	Message   string        `json:"message"`
	History   []ChatMessage `json:"history"`
}

type ChatResponse struct {
	Response        string      `json:"response"`
	EventCards      []EventCard `json:"event_cards,omitempty"`
	MenuButton      bool        `json:"menu_button,omitempty"`
	ReservationMade bool        `json:"reservation_made,omitempty"`
}

// ReservationPayload is the structured block the assistant embeds in its
// reply once it has collected all four required fields. It exists only long
// enough to be committed once.
type ReservationPayload struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Date      string `json:"date"` // YYYY-MM-DD
	Guests    int    `json:"guests"`
	TableType string `json:"tableType,omitempty"`
}

// EventCard mirrors the JSON fragment the prompt supplies per event and the
// assistant echoes verbatim inside [EVENT_CARD] markers.
type EventCard struct {
	Title      string `json:"title"`
	DJName     string `json:"dj_name"`
	EventDate  string `json:"event_date"`
	Genre      string `json:"genre"`
	ImageURL   string `json:"image_url"`
	SpotifyURL string `json:"spotify_url"`
	Promotion  string `json:"promotion"`
}

// ChatLog is the persisted trace of one user/assistant exchange.
type ChatLog struct {
	bun.BaseModel `bun:"table:chat_logs"`

	ID          string    `bun:"id,pk" json:"id"`
	SessionID   string    `bun:"session_id,nullzero" json:"session_id,omitempty"`
	UserMessage string    `bun:"user_message,notnull" json:"user_message"`
	BotResponse string    `bun:"bot_response,notnull" json:"bot_response"`
	Intent      string    `bun:"intent,nullzero" json:"intent,omitempty"` // reservation | menu | dj_info | general
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}
