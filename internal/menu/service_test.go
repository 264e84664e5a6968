package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.MenuItem, error) {
	args := m.Called(ctx, category, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockDBLayer) GetItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockDBLayer) CreateItem(ctx context.Context, item models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateItem(ctx context.Context, item models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockDBLayer) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDBLayer) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuCategory), args.Error(1)
}

func (m *MockDBLayer) CreateCategory(ctx context.Context, c models.MenuCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateCategory(ctx context.Context, c models.MenuCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockDBLayer) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDBLayer) CountItemsInCategory(ctx context.Context, category string) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func price(v float64) *float64 { return &v }

func TestCreateItemDefaultsAvailable(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CreateItem", mock.Anything, mock.MatchedBy(func(item models.MenuItem) bool {
		return item.Available && item.Category == "cocktails" && item.Price == 180
	})).Return(nil)

	svc := NewService(db, logger.NewLogger())

	item, err := svc.CreateItem(context.Background(), ItemRequest{
		Category: "cocktails",
		Name:     "Obsidian Noir",
		Price:    price(180),
	})

	assert.NoError(t, err)
	assert.True(t, item.Available)
	assert.NotEmpty(t, item.ID)
	db.AssertExpectations(t)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(&MockDBLayer{}, logger.NewLogger())

	_, err := svc.CreateItem(context.Background(), ItemRequest{Name: "sin categoría", Price: price(10)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(context.Background(), ItemRequest{Category: "shots", Name: "gratis"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(context.Background(), ItemRequest{Category: "shots", Name: "negativo", Price: price(-1)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItemPartial(t *testing.T) {
	existing := &models.MenuItem{
		ID:        "i1",
		Category:  "cocktails",
		Name:      "Obsidian Noir",
		Price:     180,
		Available: true,
	}

	db := &MockDBLayer{}
	db.On("GetItemByID", mock.Anything, "i1").Return(existing, nil)
	db.On("UpdateItem", mock.Anything, mock.MatchedBy(func(item models.MenuItem) bool {
		// Name untouched, price and availability overwritten.
		return item.Name == "Obsidian Noir" && item.Price == 200 && !item.Available
	})).Return(nil)

	svc := NewService(db, logger.NewLogger())

	updated, err := svc.UpdateItem(context.Background(), "i1", ItemRequest{
		Price:     price(200),
		Available: func() *bool { b := false; return &b }(),
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(200), updated.Price)
	db.AssertExpectations(t)
}

func TestListCategoriesFallsBackToDefaults(t *testing.T) {
	db := &MockDBLayer{}
	db.On("Categories", mock.Anything).Return(nil, errors.New("relation does not exist"))

	svc := NewService(db, logger.NewLogger())
	assert.Equal(t, models.DefaultCategories, svc.ListCategories(context.Background()))

	db = &MockDBLayer{}
	db.On("Categories", mock.Anything).Return([]models.MenuCategory{}, nil)

	svc = NewService(db, logger.NewLogger())
	assert.Equal(t, models.DefaultCategories, svc.ListCategories(context.Background()))
}

func TestCreateCategorySlugifiesName(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CreateCategory", mock.Anything, models.MenuCategory{
		ID:           "cocteles-de-autor",
		Name:         "Cócteles de Autor",
		DisplayOrder: 99,
	}).Return(nil)

	svc := NewService(db, logger.NewLogger())

	c, err := svc.CreateCategory(context.Background(), CategoryRequest{Name: "Cócteles de Autor"})

	assert.NoError(t, err)
	assert.Equal(t, "cocteles-de-autor", c.ID)
	db.AssertExpectations(t)
}

func TestDeleteCategoryGuardsItemsInUse(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CountItemsInCategory", mock.Anything, "cocktails").Return(3, nil)

	svc := NewService(db, logger.NewLogger())

	err := svc.DeleteCategory(context.Background(), "cocktails")
	assert.ErrorIs(t, err, ErrCategoryInUse)
	db.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

func TestDeleteEmptyCategory(t *testing.T) {
	db := &MockDBLayer{}
	db.On("CountItemsInCategory", mock.Anything, "specials").Return(0, nil)
	db.On("DeleteCategory", mock.Anything, "specials").Return(nil)

	svc := NewService(db, logger.NewLogger())

	assert.NoError(t, svc.DeleteCategory(context.Background(), "specials"))
	db.AssertExpectations(t)
}
