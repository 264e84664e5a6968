// Package chat wires the assistant pipeline: knowledge snapshot → system
// prompt → completion call → marker extraction → at-most-once reservation
// commit.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"obsidian-club/internal/chat/markers"
	"obsidian-club/internal/chat/prompt"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

// Apology is returned whenever the pipeline fails terminally. The guest
// never sees raw errors.
const Apology = "Lo siento, hubo un error. Por favor intenta de nuevo o contáctanos directamente."

// Lines appended to the assistant's prose after a commit attempt.
const (
	confirmationSuffix = "\n\n✅ ¡Tu reservación ha sido registrada exitosamente! Te contactaremos pronto para confirmar."
	cautionSuffix      = "\n\n⚠️ Hubo un problema al registrar tu reservación. Por favor usa el formulario de la página o llámanos."
)

// Defaults filled into chat-origin bookings; the assistant only collects
// name, phone, date and guest count.
const (
	chatEmailDomain = "@chat.obsidian.club"
	chatDefaultTime = "22:00"
	chatNotes       = "Reservación via chat"
)

// Snapshot renders the live knowledge blocks for the system prompt.
type Snapshot interface {
	EventsBlock(ctx context.Context, now time.Time) string
	MenuBlock(ctx context.Context) string
}

// Invoker runs a conversation against the completion API.
type Invoker interface {
	Invoke(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Committer persists an extracted reservation. Implemented by the
// reservations service so chat bookings share validation and the Kafka
// notification with the public form.
type Committer interface {
	Create(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error)
}

// SessionState is the per-conversation "already reserved" flag.
type SessionState interface {
	Reserved(ctx context.Context, sessionID string) bool
	MarkReserved(ctx context.Context, sessionID string)
}

// LogStore archives exchanges; best-effort.
type LogStore interface {
	InsertLog(ctx context.Context, log models.ChatLog) error
}

// LogPublisher streams exchanges to the broker; best-effort.
type LogPublisher interface {
	PublishChatMessage(log models.ChatLog) error
}

type Service struct {
	Knowledge    Snapshot
	Invoker      Invoker
	Reservations Committer
	Sessions     SessionState
	Logs         LogStore     // nil disables archiving
	Kafka        LogPublisher // nil disables streaming
	Logger       *logger.Logger
	Now          func() time.Time // injectable for tests; nil means time.Now

	extractor markers.Extractor
}

func NewService(knowledge Snapshot, invoker Invoker, reservations Committer,
	sessions SessionState, logs LogStore, kafka LogPublisher, log *logger.Logger) *Service {
	s := &Service{
		Knowledge:    knowledge,
		Invoker:      invoker,
		Reservations: reservations,
		Sessions:     sessions,
		Logs:         logs,
		Kafka:        kafka,
		Logger:       log,
	}
	s.extractor.Warn = func(msg string) { log.Warn("CHAT", msg) }
	return s
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Respond runs one user message through the whole pipeline. The returned
// error is terminal (every model and retry exhausted); in that case the
// response still carries the apology text for the transport layer to ship
// with a 500. Every other failure mode degrades to a message inside the
// reply.
func (s *Service) Respond(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	now := s.now()

	systemPrompt := prompt.Compose(
		s.Knowledge.EventsBlock(ctx, now),
		s.Knowledge.MenuBlock(ctx),
		now,
	)

	messages := make([]models.ChatMessage, 0, len(req.History)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt})
	for _, m := range req.History {
		if m.Role == models.RoleUser || m.Role == models.RoleAssistant {
			messages = append(messages, m)
		}
	}
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: req.Message})

	raw, err := s.Invoker.Invoke(ctx, messages)
	if err != nil {
		s.Logger.Error("CHAT", fmt.Sprintf("Completion failed terminally: %v", err))
		return models.ChatResponse{Response: Apology}, err
	}

	extracted := s.extractor.Extract(raw)
	response := models.ChatResponse{
		Response:   extracted.Prose,
		EventCards: extracted.EventCards,
		MenuButton: extracted.MenuButton,
	}

	if extracted.Reservation != nil && !s.Sessions.Reserved(ctx, req.SessionID) {
		if s.commit(ctx, *extracted.Reservation) {
			s.Sessions.MarkReserved(ctx, req.SessionID)
			response.ReservationMade = true
			response.Response += confirmationSuffix
		} else {
			response.Response += cautionSuffix
		}
	}

	s.archive(ctx, req, extracted, response.Response)

	return response, nil
}

// commit submits the extracted payload through the booking service, exactly
// once per session. Failures collapse to false: the guest gets the caution
// line, never an error.
func (s *Service) commit(ctx context.Context, payload models.ReservationPayload) bool {
	tableType := payload.TableType
	if tableType == "" {
		tableType = models.TableGeneral
	}

	_, err := s.Reservations.Create(ctx, models.ReservationRequest{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Email:     placeholderEmail(payload.Phone),
		Date:      payload.Date,
		Time:      chatDefaultTime,
		Guests:    payload.Guests,
		TableType: tableType,
		Notes:     chatNotes,
	})
	if err != nil {
		s.Logger.Error("CHAT", fmt.Sprintf("Reservation commit failed: %v", err))
		return false
	}
	return true
}

// placeholderEmail derives a deterministic contact address from the phone
// number, since the assistant never asks for an email.
func placeholderEmail(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		digits.WriteString("desconocido")
	}
	return digits.String() + chatEmailDomain
}

// archive persists and streams the exchange. Both sinks are best-effort.
func (s *Service) archive(ctx context.Context, req models.ChatRequest, extracted markers.Result, finalResponse string) {
	log := models.ChatLog{
		ID:          uuid.New().String(),
		SessionID:   req.SessionID,
		UserMessage: req.Message,
		BotResponse: finalResponse,
		Intent:      classifyIntent(req.Message, extracted),
		CreatedAt:   s.now(),
	}

	if s.Logs != nil {
		if err := s.Logs.InsertLog(ctx, log); err != nil {
			s.Logger.Error("CHAT", fmt.Sprintf("Failed to archive chat log: %v", err))
		}
	}
	if s.Kafka != nil {
		if err := s.Kafka.PublishChatMessage(log); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish chat message: %v", err))
		}
	}
}

func classifyIntent(message string, extracted markers.Result) string {
	switch {
	case extracted.Reservation != nil:
		return "reservation"
	case len(extracted.EventCards) > 0:
		return "dj_info"
	case extracted.MenuButton:
		return "menu"
	case strings.Contains(strings.ToLower(message), "reserv"):
		return "reservation"
	default:
		return "general"
	}
}
