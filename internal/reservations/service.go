package reservations

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrValidation marks synchronous rejections that map to a 400.
var ErrValidation = errors.New("validation failed")

type DBLayer interface {
	CreateReservation(ctx context.Context, r models.Reservation) error
	GetReservationByID(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, date, status string) ([]models.Reservation, error)
	ListBetween(ctx context.Context, startDate, endDate string) ([]models.Reservation, error)
	ListPending(ctx context.Context, limit int) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error)
}

type Publisher interface {
	PublishReservationCreated(r models.Reservation) error
}

type Service struct {
	DB     DBLayer
	Kafka  Publisher // nil when messaging is disabled
	Logger *logger.Logger
}

func NewService(db DBLayer, kafka Publisher, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: kafka, Logger: log}
}

// Create validates and persists a booking, then notifies staff over Kafka.
// The publish is best-effort: a broker outage never loses a booking.
func (s *Service) Create(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Date == "" || req.Time == "" {
		return nil, fmt.Errorf("%w: faltan campos requeridos", ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email inválido", ErrValidation)
	}
	if _, err := time.Parse(utils.DateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: fecha inválida, usa YYYY-MM-DD", ErrValidation)
	}
	if req.Guests < 0 {
		return nil, fmt.Errorf("%w: número de personas inválido", ErrValidation)
	}

	guests := req.Guests
	if guests == 0 {
		guests = 2
	}
	tableType := req.TableType
	if tableType == "" {
		tableType = models.TableGeneral
	}

	r := models.Reservation{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    guests,
		TableType: tableType,
		Notes:     req.Notes,
		Status:    models.ReservationPending,
		CreatedAt: time.Now(),
	}

	if err := s.DB.CreateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	s.Logger.LogReservation("CREATE", r.ID, fmt.Sprintf("%s, %s, %d guests on %s", r.Name, r.TableType, r.Guests, r.Date))

	if s.Kafka != nil {
		if err := s.Kafka.PublishReservationCreated(r); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish reservation created: %v", err))
		}
	}

	return &r, nil
}

func (s *Service) List(ctx context.Context, date, status string) ([]models.Reservation, error) {
	return s.DB.ListReservations(ctx, date, status)
}

// UpdateStatus moves a reservation to any of the known statuses. There is no
// state machine: staff can set any status at any time.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	if id == "" || status == "" {
		return nil, fmt.Errorf("%w: ID y status son requeridos", ErrValidation)
	}
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: status inválido", ErrValidation)
	}

	r, err := s.DB.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	s.Logger.LogReservation("STATUS", id, "moved to "+status)
	return r, nil
}

// Stats aggregates the admin dashboard numbers over a civil-date window.
func (s *Service) Stats(ctx context.Context, startDate, endDate string) (*models.ReservationStats, error) {
	reservations, err := s.DB.ListBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for stats: %w", err)
	}

	stats := &models.ReservationStats{
		TotalReservations:       len(reservations),
		ReservationsByDay:       []models.DayCount{},
		ReservationsByTableType: []models.TableTypeCount{},
	}

	byDay := make(map[string]int)
	byType := make(map[string]int)
	for _, r := range reservations {
		switch r.Status {
		case models.ReservationConfirmed:
			stats.ConfirmedCount++
		case models.ReservationPending:
			stats.PendingCount++
		case models.ReservationCancelled:
			stats.CancelledCount++
		case models.ReservationCompleted:
			stats.CompletedCount++
		}
		stats.TotalGuests += r.Guests
		byDay[r.Date]++

		tableType := r.TableType
		if tableType == "" {
			tableType = models.TableGeneral
		}
		byType[tableType]++
	}

	for date, count := range byDay {
		stats.ReservationsByDay = append(stats.ReservationsByDay, models.DayCount{Date: date, Count: count})
	}
	sort.Slice(stats.ReservationsByDay, func(i, j int) bool {
		return stats.ReservationsByDay[i].Date < stats.ReservationsByDay[j].Date
	})

	for tableType, count := range byType {
		stats.ReservationsByTableType = append(stats.ReservationsByTableType, models.TableTypeCount{Type: tableType, Count: count})
	}
	sort.Slice(stats.ReservationsByTableType, func(i, j int) bool {
		return stats.ReservationsByTableType[i].Type < stats.ReservationsByTableType[j].Type
	})

	pending, err := s.DB.ListPending(ctx, 10)
	if err != nil {
		s.Logger.Error("DATABASE", fmt.Sprintf("Failed to load pending reservations: %v", err))
		pending = []models.Reservation{}
	}
	stats.PendingReservations = pending

	return stats, nil
}
