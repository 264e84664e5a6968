package db

import (
	"context"

	"github.com/uptrace/bun"

	"obsidian-club/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListEvents → all events ascending by date, optionally featured-only or
// limited to dates >= today (venue civil date supplied by the caller)
func (d *DB) ListEvents(ctx context.Context, featured bool, since string) ([]models.Event, error) {
	var events []models.Event
	q := d.Bun.NewSelect().
		Model(&events).
		Order("event_date ASC")
	if featured {
		q = q.Where("featured = ?", true)
	}
	if since != "" {
		q = q.Where("event_date >= ?", since)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// Upcoming → events on or after the venue's current civil date, ascending,
// capped for the prompt's knowledge block
func (d *DB) Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Where("event_date >= ?", today).
		Order("event_date ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := d.Bun.NewSelect().
		Model(&e).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *DB) CreateEvent(ctx context.Context, e models.Event) error {
	_, err := d.Bun.NewInsert().Model(&e).Exec(ctx)
	return err
}

// UpdateEvent → overwrite the mutable columns of one event
func (d *DB) UpdateEvent(ctx context.Context, e models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&e).
		Column("title", "subtitle", "dj_name", "event_date", "event_time",
			"genre", "image_url", "spotify_url", "promotion", "featured").
		Where("id = ?", e.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
