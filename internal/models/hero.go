package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MaxHeroImages caps the landing-page carousel.
const MaxHeroImages = 4

type HeroImage struct {
	bun.BaseModel `bun:"table:hero_images"`

	ID         string    `bun:"id,pk" json:"id"`
	ImageURL   string    `bun:"image_url,notnull" json:"image_url"`
	OrderIndex int       `bun:"order_index,notnull" json:"order_index"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}
