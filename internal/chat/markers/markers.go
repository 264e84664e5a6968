// Package markers defines the delimiter grammar the assistant uses to smuggle
// structured data through free-text replies, and the tolerant scanner that
// pulls it back out. The prompt composer and the extractor both read the
// tokens from here so the two sides of the protocol cannot drift apart.
package markers

import (
	"encoding/json"
	"strings"

	"obsidian-club/internal/models"
)

// Exact token spellings. These are wire format: they must stay byte-identical
// between the prompt instructions and the scanner.
const (
	ReservationOpen  = "[RESERVACION_DATA]"
	ReservationClose = "[/RESERVACION_DATA]"
	EventCardOpen    = "[EVENT_CARD]"
	EventCardClose   = "[/EVENT_CARD]"
	MenuButton       = "[MENU_BUTTON]"
)

// Result is everything extracted from one assistant reply.
type Result struct {
	Prose       string
	Reservation *models.ReservationPayload
	EventCards  []models.EventCard
	MenuButton  bool
}

// Extractor scans assistant replies. Malformed JSON inside a block is
// reported through Warn and the block is dropped; the scanner never fails.
type Extractor struct {
	Warn func(message string)
}

func (e *Extractor) warn(msg string) {
	if e.Warn != nil {
		e.Warn(msg)
	}
}

// Extract separates marker blocks from prose. Only the bracketed substrings
// are parsed as JSON; the surrounding text is never interpreted. All matched
// spans are removed from the prose, including blocks whose payload turned out
// to be malformed. An opening token with no closing token is left in the
// prose untouched.
func (e *Extractor) Extract(raw string) Result {
	res := Result{}
	text := raw

	// Reservation blocks. The model is instructed to emit at most one; if it
	// misbehaves, the first well-formed payload wins and the rest are only
	// stripped from the prose.
	for {
		block, rest, found := cutBlock(text, ReservationOpen, ReservationClose)
		if !found {
			break
		}
		text = rest
		if res.Reservation != nil {
			e.warn("duplicate reservation block in one reply, ignoring")
			continue
		}
		var payload models.ReservationPayload
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			e.warn("malformed reservation payload: " + err.Error())
			continue
		}
		res.Reservation = &payload
	}

	for {
		block, rest, found := cutBlock(text, EventCardOpen, EventCardClose)
		if !found {
			break
		}
		text = rest
		var card models.EventCard
		if err := json.Unmarshal([]byte(block), &card); err != nil {
			e.warn("malformed event card payload: " + err.Error())
			continue
		}
		res.EventCards = append(res.EventCards, card)
	}

	if strings.Contains(text, MenuButton) {
		res.MenuButton = true
		text = strings.ReplaceAll(text, MenuButton, "")
	}

	res.Prose = strings.TrimSpace(text)
	return res
}

// cutBlock finds the first open...close pair, returning the trimmed payload
// between the tokens and the text with the whole span removed.
func cutBlock(text, open, close string) (block, rest string, found bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", text, false
	}
	end := strings.Index(text[start+len(open):], close)
	if end < 0 {
		return "", text, false
	}
	end += start + len(open)

	block = strings.TrimSpace(text[start+len(open) : end])
	rest = text[:start] + text[end+len(close):]
	return block, rest, true
}
