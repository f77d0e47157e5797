// Package store is the persistence layer. Each entity exposes a small
// capability interface; Gorm implements all of them on top of a *gorm.DB that
// callers construct and inject explicitly.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kitchenos/models"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("store: duplicate record")
	// ErrInvalidReference is returned when a write points at a missing outlet, category or ingredient.
	ErrInvalidReference = errors.New("store: invalid reference")
	// ErrInUse is returned when deleting a row that other rows still reference.
	ErrInUse = errors.New("store: record in use")
	// ErrNoDatabase is returned by a Gorm store built without a database handle.
	ErrNoDatabase = errors.New("store: database not configured")
)

// OutletSummary is an outlet with its aggregated counts.
type OutletSummary struct {
	models.Outlet
	RecipeCount   int64 `json:"recipe_count"`
	CategoryCount int64 `json:"category_count"`
}

// IngredientFilter narrows ingredient listings.
type IngredientFilter struct {
	// Search matches name, ingredient number or category, case-insensitively.
	Search string
}

// RecipeFilter narrows recipe listings. Zero values do not filter.
type RecipeFilter struct {
	OutletID      string
	CategoryID    string
	Uncategorized bool
	// Search matches recipe name, recipe number or outlet name, case-insensitively.
	Search string
	Limit  int
}

// RecipeDraft is the input of SaveRecipe: the recipe header plus its lines.
// A blank Recipe.ID creates a new recipe, a blank RecipeNo assigns the next number.
type RecipeDraft struct {
	Recipe models.Recipe
	Lines  []LineDraft
}

// LineDraft is an ingredient line awaiting persistence. Lines without an
// IngredientID create (or reuse) a library ingredient named IngredientName.
type LineDraft struct {
	IngredientID   string
	IngredientName string
	Quantity       decimal.Decimal
	Unit           string
	PrepDetail     string
	CostPerUnit    decimal.Decimal
}

// DashboardStats are the headline numbers of the dashboard.
type DashboardStats struct {
	Outlets            int64           `json:"outlets"`
	Recipes            int64           `json:"recipes"`
	Ingredients        int64           `json:"ingredients"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
}

// OutletStore manages outlets.
type OutletStore interface {
	ListOutlets(ctx context.Context) ([]OutletSummary, error)
	GetOutlet(ctx context.Context, id string) (*models.Outlet, error)
	CreateOutlet(ctx context.Context, outlet *models.Outlet) error
	UpdateOutlet(ctx context.Context, id string, outlet models.Outlet) (*models.Outlet, error)
	DeleteOutlet(ctx context.Context, id string) error
}

// CategoryStore manages per-outlet recipe categories.
type CategoryStore interface {
	ListCategories(ctx context.Context, outletID string) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category, sortOrder *int) error
	UpdateCategory(ctx context.Context, id, name string, sortOrder *int) (*models.Category, error)
	ReorderCategories(ctx context.Context, outletID string, orderedIDs []string) error
	DeleteCategory(ctx context.Context, id string) error
}

// IngredientStore manages the global ingredient library.
type IngredientStore interface {
	ListIngredients(ctx context.Context, filter IngredientFilter) ([]models.Ingredient, error)
	SuggestIngredients(ctx context.Context, query string, limit int) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*models.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	UpdateIngredient(ctx context.Context, id string, ingredient models.Ingredient) (*models.Ingredient, error)
	UpsertIngredient(ctx context.Context, ingredient *models.Ingredient) (bool, error)
	DeleteIngredient(ctx context.Context, id string) error
}

// RecipeStore manages recipes and their ingredient lines.
type RecipeStore interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	SaveRecipe(ctx context.Context, draft RecipeDraft) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	NextRecipeNumber(ctx context.Context, now time.Time) (string, error)
}

// UnitStore manages the unit vocabulary.
type UnitStore interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	CreateUnit(ctx context.Context, unit *models.Unit) error
	UpdateUnit(ctx context.Context, id string, unit models.Unit) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id string) error
}

// UserStore manages back-office accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// DashboardStore computes dashboard figures.
type DashboardStore interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
}

// Store is the full persistence capability set used by the HTTP handlers.
type Store interface {
	OutletStore
	CategoryStore
	IngredientStore
	RecipeStore
	UnitStore
	UserStore
	DashboardStore
}

// Gorm implements Store with gorm.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm wraps a database handle.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrNoDatabase
	}
	return s.db.WithContext(ctx), nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
