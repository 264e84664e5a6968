package db

import (
	"context"

	"github.com/uptrace/bun"

	"obsidian-club/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- ITEMS ----------------

// ListItems → menu items ordered by category then name, optionally narrowed
// by category slug or availability
func (d *DB) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	q := d.Bun.NewSelect().
		Model(&items).
		Order("category ASC", "name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

// AvailableItems → what the chat assistant's knowledge snapshot sees
func (d *DB) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	return d.ListItems(ctx, "", true)
}

func (d *DB) GetItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := d.Bun.NewSelect().
		Model(&item).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) CreateItem(ctx context.Context, item models.MenuItem) error {
	_, err := d.Bun.NewInsert().Model(&item).Exec(ctx)
	return err
}

func (d *DB) UpdateItem(ctx context.Context, item models.MenuItem) error {
	_, err := d.Bun.NewUpdate().
		Model(&item).
		Column("category", "name", "description", "price", "image_url", "available", "featured").
		Where("id = ?", item.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteItem(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.MenuItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- CATEGORIES ----------------

// Categories → display-ordered category list
func (d *DB) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := d.Bun.NewSelect().
		Model(&categories).
		Order("display_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *DB) CreateCategory(ctx context.Context, c models.MenuCategory) error {
	_, err := d.Bun.NewInsert().Model(&c).Exec(ctx)
	return err
}

func (d *DB) UpdateCategory(ctx context.Context, c models.MenuCategory) error {
	_, err := d.Bun.NewUpdate().
		Model(&c).
		Column("name", "display_order").
		Where("id = ?", c.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteCategory(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.MenuCategory)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// CountItemsInCategory → the delete guard: a category with items stays
func (d *DB) CountItemsInCategory(ctx context.Context, category string) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.MenuItem)(nil)).
		Where("category = ?", category).
		Count(ctx)
}
