package db

import (
	"context"

	"github.com/uptrace/bun"

	"obsidian-club/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// InsertLog → persist one user/assistant exchange
func (d *DB) InsertLog(ctx context.Context, log models.ChatLog) error {
	_, err := d.Bun.NewInsert().Model(&log).Exec(ctx)
	return err
}
