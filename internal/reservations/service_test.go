package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

// Mock implementations

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateReservation(ctx context.Context, r models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDBLayer) GetReservationByID(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockDBLayer) ListReservations(ctx context.Context, date, status string) ([]models.Reservation, error) {
	args := m.Called(ctx, date, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockDBLayer) ListBetween(ctx context.Context, startDate, endDate string) ([]models.Reservation, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockDBLayer) ListPending(ctx context.Context, limit int) ([]models.Reservation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockDBLayer) UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReservationCreated(r models.Reservation) error {
	args := m.Called(r)
	return args.Error(0)
}

func validRequest() models.ReservationRequest {
	return models.ReservationRequest{
		Name:   "Carlos Mendoza",
		Email:  "carlos@example.com",
		Phone:  "8661234567",
		Date:   "2026-09-05",
		Time:   "22:00",
		Guests: 4,
	}
}

func TestCreateReservation(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CreateReservation", mock.Anything, mock.Anything).Return(nil)

	publisher := &MockPublisher{}
	publisher.On("PublishReservationCreated", mock.Anything).Return(nil)

	svc := NewService(db, publisher, logger.NewLogger())

	created, err := svc.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.ReservationPending, created.Status)
	assert.Equal(t, models.TableGeneral, created.TableType)
	db.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateReservationValidation(t *testing.T) {
	svc := NewService(&MockDBLayer{}, nil, logger.NewLogger())

	cases := []struct {
		name   string
		mutate func(*models.ReservationRequest)
	}{
		{"missing name", func(r *models.ReservationRequest) { r.Name = "" }},
		{"missing email", func(r *models.ReservationRequest) { r.Email = "" }},
		{"missing phone", func(r *models.ReservationRequest) { r.Phone = "" }},
		{"missing date", func(r *models.ReservationRequest) { r.Date = "" }},
		{"missing time", func(r *models.ReservationRequest) { r.Time = "" }},
		{"bad email", func(r *models.ReservationRequest) { r.Email = "not an email" }},
		{"bad date", func(r *models.ReservationRequest) { r.Date = "05/09/2026" }},
		{"negative guests", func(r *models.ReservationRequest) { r.Guests = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateReservationDefaultsGuests(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r models.Reservation) bool {
		return r.Guests == 2
	})).Return(nil)

	svc := NewService(db, nil, logger.NewLogger())

	req := validRequest()
	req.Guests = 0
	created, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 2, created.Guests)
	db.AssertExpectations(t)
}

func TestCreateReservationSurvivesPublishFailure(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CreateReservation", mock.Anything, mock.Anything).Return(nil)

	publisher := &MockPublisher{}
	publisher.On("PublishReservationCreated", mock.Anything).Return(errors.New("broker down"))

	svc := NewService(db, publisher, logger.NewLogger())

	created, err := svc.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewService(&MockDBLayer{}, nil, logger.NewLogger())

	_, err := svc.UpdateStatus(context.Background(), "some-id", "archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(context.Background(), "", models.ReservationConfirmed)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus(t *testing.T) {
	db := &MockDBLayer{}
	db.On("UpdateStatus", mock.Anything, "res-1", models.ReservationConfirmed).
		Return(&models.Reservation{ID: "res-1", Status: models.ReservationConfirmed}, nil)

	svc := NewService(db, nil, logger.NewLogger())

	updated, err := svc.UpdateStatus(context.Background(), "res-1", models.ReservationConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, updated.Status)
}

func TestStatsAggregates(t *testing.T) {
	rows := []models.Reservation{
		{Date: "2026-09-05", Status: models.ReservationConfirmed, Guests: 4, TableType: "vip"},
		{Date: "2026-09-05", Status: models.ReservationPending, Guests: 2, TableType: "general"},
		{Date: "2026-09-04", Status: models.ReservationCancelled, Guests: 6},
		{Date: "2026-09-06", Status: models.ReservationCompleted, Guests: 3, TableType: "general"},
	}

	db := &MockDBLayer{}
	db.On("ListBetween", mock.Anything, "2026-09-01", "2026-09-30").Return(rows, nil)
	db.On("ListPending", mock.Anything, 10).Return([]models.Reservation{rows[1]}, nil)

	svc := NewService(db, nil, logger.NewLogger())

	stats, err := svc.Stats(context.Background(), "2026-09-01", "2026-09-30")

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalReservations)
	assert.Equal(t, 1, stats.ConfirmedCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 1, stats.CancelledCount)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 15, stats.TotalGuests)

	// Days come back sorted.
	assert.Equal(t, []models.DayCount{
		{Date: "2026-09-04", Count: 1},
		{Date: "2026-09-05", Count: 2},
		{Date: "2026-09-06", Count: 1},
	}, stats.ReservationsByDay)

	// An empty table type counts as general.
	assert.Equal(t, []models.TableTypeCount{
		{Type: "general", Count: 3},
		{Type: "vip", Count: 1},
	}, stats.ReservationsByTableType)

	assert.Len(t, stats.PendingReservations, 1)
}

func TestStatsPendingListFailureDegrades(t *testing.T) {
	db := &MockDBLayer{}
	db.On("ListBetween", mock.Anything, mock.Anything, mock.Anything).Return([]models.Reservation{}, nil)
	db.On("ListPending", mock.Anything, 10).Return(nil, errors.New("timeout"))

	svc := NewService(db, nil, logger.NewLogger())

	stats, err := svc.Stats(context.Background(), "2026-09-01", "2026-09-30")

	assert.NoError(t, err)
	assert.Empty(t, stats.PendingReservations)
}
