package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

var ErrValidation = errors.New("validation failed")

type DBLayer interface {
	ListEvents(ctx context.Context, featured bool, since string) ([]models.Event, error)
	Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) error
	UpdateEvent(ctx context.Context, e models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type Service struct {
	DB       DBLayer
	Location *time.Location
	Logger   *logger.Logger
}

func NewService(db DBLayer, loc *time.Location, log *logger.Logger) *Service {
	return &Service{DB: db, Location: loc, Logger: log}
}

// List returns events for the public site. With upcoming=true only events on
// or after the venue's current civil day (not UTC) are included, so an event
// happening tonight still shows up.
func (s *Service) List(ctx context.Context, featured, upcoming bool) ([]models.Event, error) {
	since := ""
	if upcoming {
		since = utils.CivilDate(time.Now(), s.Location)
	}
	return s.DB.ListEvents(ctx, featured, since)
}

func (s *Service) Create(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	if req.DJName == "" || req.EventDate == "" {
		return nil, fmt.Errorf("%w: nombre del DJ y fecha son requeridos", ErrValidation)
	}
	if _, err := time.Parse(utils.DateLayout, req.EventDate); err != nil {
		return nil, fmt.Errorf("%w: fecha inválida, usa YYYY-MM-DD", ErrValidation)
	}

	e := models.Event{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		DJName:     req.DJName,
		EventDate:  req.EventDate,
		EventTime:  req.EventTime,
		Genre:      req.Genre,
		ImageURL:   req.ImageURL,
		SpotifyURL: req.SpotifyURL,
		Promotion:  req.Promotion,
		Featured:   req.Featured,
		CreatedAt:  time.Now(),
	}

	if err := s.DB.CreateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.Logger.Info("EVENTS", fmt.Sprintf("Created event %s (%s on %s)", e.ID, e.DJName, e.EventDate))
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.EventRequest) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID es requerido", ErrValidation)
	}

	existing, err := s.DB.GetEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event %s not found: %w", id, err)
	}

	existing.Title = req.Title
	existing.Subtitle = req.Subtitle
	if req.DJName != "" {
		existing.DJName = req.DJName
	}
	if req.EventDate != "" {
		if _, err := time.Parse(utils.DateLayout, req.EventDate); err != nil {
			return nil, fmt.Errorf("%w: fecha inválida, usa YYYY-MM-DD", ErrValidation)
		}
		existing.EventDate = req.EventDate
	}
	existing.EventTime = req.EventTime
	existing.Genre = req.Genre
	existing.ImageURL = req.ImageURL
	existing.SpotifyURL = req.SpotifyURL
	existing.Promotion = req.Promotion
	existing.Featured = req.Featured

	if err := s.DB.UpdateEvent(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID es requerido", ErrValidation)
	}
	if err := s.DB.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	s.Logger.Info("EVENTS", "Deleted event "+id)
	return nil
}
