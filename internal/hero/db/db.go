package db

import (
	"context"

	"github.com/uptrace/bun"

	"obsidian-club/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListImages → carousel images in display order, capped at the maximum
func (d *DB) ListImages(ctx context.Context) ([]models.HeroImage, error) {
	var images []models.HeroImage
	err := d.Bun.NewSelect().
		Model(&images).
		Order("order_index ASC").
		Limit(models.MaxHeroImages).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.HeroImage{}
	}
	return images, nil
}

func (d *DB) CountImages(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.HeroImage)(nil)).
		Count(ctx)
}

func (d *DB) CreateImage(ctx context.Context, img models.HeroImage) error {
	_, err := d.Bun.NewInsert().Model(&img).Exec(ctx)
	return err
}

func (d *DB) UpdateImage(ctx context.Context, img models.HeroImage) error {
	_, err := d.Bun.NewUpdate().
		Model(&img).
		Column("image_url", "order_index").
		Where("id = ?", img.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteImage(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.HeroImage)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
