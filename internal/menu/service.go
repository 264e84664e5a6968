package menu

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

var (
	ErrValidation    = errors.New("validation failed")
	ErrCategoryInUse = errors.New("category has items")
	ErrNegativePrice = errors.New("price must be non-negative")
)

type DBLayer interface {
	ListItems(ctx context.Context, category string, availableOnly bool) ([]models.MenuItem, error)
	GetItemByID(ctx context.Context, id string) (*models.MenuItem, error)
	CreateItem(ctx context.Context, item models.MenuItem) error
	UpdateItem(ctx context.Context, item models.MenuItem) error
	DeleteItem(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, c models.MenuCategory) error
	UpdateCategory(ctx context.Context, c models.MenuCategory) error
	DeleteCategory(ctx context.Context, id string) error
	CountItemsInCategory(ctx context.Context, category string) (int, error)
}

type Service struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewService(db DBLayer, log *logger.Logger) *Service {
	return &Service{DB: db, Logger: log}
}

// ---------------- ITEMS ----------------

type ItemRequest struct {
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
	Available   *bool    `json:"available"`
	Featured    bool     `json:"featured"`
}

func (s *Service) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.MenuItem, error) {
	return s.DB.ListItems(ctx, category, availableOnly)
}

func (s *Service) CreateItem(ctx context.Context, req ItemRequest) (*models.MenuItem, error) {
	if req.Category == "" || req.Name == "" || req.Price == nil {
		return nil, fmt.Errorf("%w: categoría, nombre y precio son requeridos", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("%w: %v", ErrValidation, ErrNegativePrice)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.MenuItem{
		ID:          uuid.New().String(),
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
		Featured:    req.Featured,
		CreatedAt:   time.Now(),
	}

	if err := s.DB.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	s.Logger.Info("MENU", fmt.Sprintf("Created item %s (%s / %s)", item.ID, item.Category, item.Name))
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, req ItemRequest) (*models.MenuItem, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID es requerido", ErrValidation)
	}

	existing, err := s.DB.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("menu item %s not found: %w", id, err)
	}

	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.Description = req.Description
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: %v", ErrValidation, ErrNegativePrice)
		}
		existing.Price = *req.Price
	}
	existing.ImageURL = req.ImageURL
	if req.Available != nil {
		existing.Available = *req.Available
	}
	existing.Featured = req.Featured

	if err := s.DB.UpdateItem(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update menu item %s: %w", id, err)
	}
	return existing, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID es requerido", ErrValidation)
	}
	if err := s.DB.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item %s: %w", id, err)
	}
	return nil
}

// ---------------- CATEGORIES ----------------

type CategoryRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// ListCategories falls back to the fixed default set when the table is empty
// or unreadable, so the public menu always has sections.
func (s *Service) ListCategories(ctx context.Context) []models.MenuCategory {
	categories, err := s.DB.Categories(ctx)
	if err != nil {
		s.Logger.Error("MENU", fmt.Sprintf("Failed to load categories, serving defaults: %v", err))
		return models.DefaultCategories
	}
	if len(categories) == 0 {
		return models.DefaultCategories
	}
	return categories
}

// CreateCategory derives the id from the display name: "Cócteles de Autor"
// becomes "cocteles-de-autor".
func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*models.MenuCategory, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", ErrValidation)
	}

	order := req.DisplayOrder
	if order == 0 {
		order = 99
	}

	c := models.MenuCategory{
		ID:           utils.Slugify(req.Name),
		Name:         req.Name,
		DisplayOrder: order,
	}
	if c.ID == "" {
		return nil, fmt.Errorf("%w: nombre inválido", ErrValidation)
	}

	if err := s.DB.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.Logger.Info("MENU", "Created category "+c.ID)
	return &c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*models.MenuCategory, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID es requerido", ErrValidation)
	}

	c := models.MenuCategory{ID: id, Name: req.Name, DisplayOrder: req.DisplayOrder}
	if err := s.DB.UpdateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return &c, nil
}

// DeleteCategory refuses while menu items still reference the category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID es requerido", ErrValidation)
	}

	count, err := s.DB.CountItemsInCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category %s usage: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: mueve o elimina los items primero", ErrCategoryInUse)
	}

	if err := s.DB.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	s.Logger.Info("MENU", "Deleted category "+id)
	return nil
}
