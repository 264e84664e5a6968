package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID          string    `bun:"id,pk" json:"id"`
	Category    string    `bun:"category,notnull" json:"category"` // slug of a MenuCategory
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	Price       float64   `bun:"price,notnull" json:"price"`
	ImageURL    string    `bun:"image_url,nullzero" json:"image_url,omitempty"`
	Available   bool      `bun:"available,notnull" json:"available"`
	Featured    bool      `bun:"featured,notnull" json:"featured"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}

type MenuCategory struct {
	bun.BaseModel `bun:"table:menu_categories"`

	ID           string `bun:"id,pk" json:"id"` // slug, derived from the name
	Name         string `bun:"name,notnull" json:"name"`
	DisplayOrder int    `bun:"display_order,notnull" json:"display_order"`
}

// DefaultCategories is served when the categories table is missing or empty,
// so the public menu never renders without sections.
var DefaultCategories = []MenuCategory{
	{ID: "cocktails", Name: "Cócteles", DisplayOrder: 1},
	{ID: "shots", Name: "Shots", DisplayOrder: 2},
	{ID: "bottles", Name: "Botellas", DisplayOrder: 3},
	{ID: "food", Name: "Comida", DisplayOrder: 4},
	{ID: "specials", Name: "Especiales", DisplayOrder: 5},
}
