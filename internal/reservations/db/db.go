package db

import (
	"context"

	"github.com/uptrace/bun"

	"obsidian-club/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateReservation → insert a new booking row
func (d *DB) CreateReservation(ctx context.Context, r models.Reservation) error {
	_, err := d.Bun.NewInsert().Model(&r).Exec(ctx)
	return err
}

// GetReservationByID → fetch one reservation
func (d *DB) GetReservationByID(ctx context.Context, id string) (*models.Reservation, error) {
	var r models.Reservation
	err := d.Bun.NewSelect().
		Model(&r).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReservations → admin listing, optionally narrowed by date and status,
// ordered by date then time
func (d *DB) ListReservations(ctx context.Context, date, status string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := d.Bun.NewSelect().
		Model(&reservations).
		Order("date ASC", "time ASC")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// ListBetween → rows with startDate <= date <= endDate, for the stats window
func (d *DB) ListBetween(ctx context.Context, startDate, endDate string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.Bun.NewSelect().
		Model(&reservations).
		Where("date >= ?", startDate).
		Where("date <= ?", endDate).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// ListPending → oldest upcoming pending bookings for the dashboard
func (d *DB) ListPending(ctx context.Context, limit int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.Bun.NewSelect().
		Model(&reservations).
		Where("status = ?", models.ReservationPending).
		Order("date ASC", "time ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// UpdateStatus → staff status change; transitions are unconstrained
func (d *DB) UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	r := models.Reservation{ID: id, Status: status}
	_, err := d.Bun.NewUpdate().
		Model(&r).
		Column("status").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return d.GetReservationByID(ctx, id)
}
