// Package mock provides an in-memory sqlite database seeded with a demo
// kitchen: a user, units, an ingredient library, outlets, categories and
// costed recipes.
package mock

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"kitchenos/internal/config"
	"kitchenos/internal/db"
	applog "kitchenos/internal/log"
	"kitchenos/internal/store"
	"kitchenos/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Demo credentials of the seeded user.
const (
	DemoEmail    = "demo@kitchenos.app"
	DemoPassword = "mutfak"
)

type fixture struct {
	User        fixtureUser         `yaml:"user"`
	Units       []models.Unit       `yaml:"units"`
	Ingredients []fixtureIngredient `yaml:"ingredients"`
	Outlets     []fixtureOutlet     `yaml:"outlets"`
}

type fixtureUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type fixtureIngredient struct {
	IngredientNo string `yaml:"ingredient_no"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Supplier     string `yaml:"supplier"`
	BaseUnit     string `yaml:"base_unit"`
	Cost         string `yaml:"cost"`
}

type fixtureOutlet struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	Location   string            `yaml:"location"`
	Status     string            `yaml:"status"`
	Categories []fixtureCategory `yaml:"categories"`
	// Recipes are the outlet's uncategorized recipes.
	Recipes []fixtureRecipe `yaml:"recipes"`
}

type fixtureCategory struct {
	Name    string          `yaml:"name"`
	Recipes []fixtureRecipe `yaml:"recipes"`
}

type fixtureRecipe struct {
	Name            string           `yaml:"name"`
	PrepTime        *int             `yaml:"prep_time"`
	Difficulty      string           `yaml:"difficulty"`
	YieldAmount     string           `yaml:"yield_amount"`
	YieldUnit       string           `yaml:"yield_unit"`
	SalePrice       string           `yaml:"sale_price"`
	WastePercentage string           `yaml:"waste_percentage"`
	Instructions    string           `yaml:"instructions"`
	CriticalDetails string           `yaml:"critical_details"`
	Allergens       models.Allergens `yaml:"allergens"`
	Lines           []fixtureLine    `yaml:"lines"`
}

type fixtureLine struct {
	Ingredient string `yaml:"ingredient"`
	Quantity   string `yaml:"quantity"`
	Unit       string `yaml:"unit"`
	Prep       string `yaml:"prep"`
	Cost       string `yaml:"cost"`
}

// New returns an in-memory sqlite database seeded with representative kitchen data.
// Every call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := db.Configure(config.DatabaseConfig{
		URL: fmt.Sprintf("file:kitchenos-mock-%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		return nil, err
	}

	if err := Seed(ctx, store.NewGorm(database)); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Seed writes the embedded fixture through s.
func Seed(ctx context.Context, s store.Store) error {
	applog.Debug(ctx, "seeding mock database")

	var data fixture
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("decode seed fixture: %w", err)
	}

	password, err := bcrypt.GenerateFromPassword([]byte(data.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{Name: data.User.Name, Email: data.User.Email, PasswordHash: string(password)}
	if err := s.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	for i := range data.Units {
		if err := s.CreateUnit(ctx, &data.Units[i]); err != nil {
			return fmt.Errorf("create unit %q: %w", data.Units[i].Name, err)
		}
	}

	library := make(map[string]*models.Ingredient, len(data.Ingredients))
	for _, item := range data.Ingredients {
		cost, err := decimalOrZero(item.Cost)
		if err != nil {
			return fmt.Errorf("ingredient %q: %w", item.Name, err)
		}
		ingredient := &models.Ingredient{
			IngredientNo: item.IngredientNo,
			Name:         item.Name,
			Category:     item.Category,
			Supplier:     item.Supplier,
			BaseUnit:     item.BaseUnit,
			CostPerUnit:  cost,
		}
		if err := s.CreateIngredient(ctx, ingredient); err != nil {
			return fmt.Errorf("create ingredient %q: %w", item.Name, err)
		}
		library[ingredient.Name] = ingredient
	}

	for _, item := range data.Outlets {
		status, err := models.ParseOutletStatus(item.Status)
		if err != nil {
			return err
		}
		outlet := &models.Outlet{Name: item.Name, Type: item.Type, Location: item.Location, Status: status}
		if err := s.CreateOutlet(ctx, outlet); err != nil {
			return fmt.Errorf("create outlet %q: %w", item.Name, err)
		}

		for _, group := range item.Categories {
			category := &models.Category{OutletID: outlet.ID, Name: group.Name}
			if err := s.CreateCategory(ctx, category, nil); err != nil {
				return fmt.Errorf("create category %q: %w", group.Name, err)
			}
			for _, recipe := range group.Recipes {
				if err := seedRecipe(ctx, s, library, outlet.ID, &category.ID, recipe); err != nil {
					return err
				}
			}
		}
		for _, recipe := range item.Recipes {
			if err := seedRecipe(ctx, s, library, outlet.ID, nil, recipe); err != nil {
				return err
			}
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

func seedRecipe(ctx context.Context, s store.RecipeStore, library map[string]*models.Ingredient, outletID string, categoryID *string, item fixtureRecipe) error {
	difficulty, err := models.ParseDifficulty(item.Difficulty)
	if err != nil {
		return err
	}
	yield, err := decimalOrZero(item.YieldAmount)
	if err != nil {
		return fmt.Errorf("recipe %q yield: %w", item.Name, err)
	}
	sale, err := nullDecimal(item.SalePrice)
	if err != nil {
		return fmt.Errorf("recipe %q sale price: %w", item.Name, err)
	}
	waste, err := nullDecimal(item.WastePercentage)
	if err != nil {
		return fmt.Errorf("recipe %q waste: %w", item.Name, err)
	}

	draft := store.RecipeDraft{Recipe: models.Recipe{
		OutletID:        outletID,
		CategoryID:      categoryID,
		Name:            item.Name,
		Instructions:    item.Instructions,
		CriticalDetails: item.CriticalDetails,
		PrepTime:        item.PrepTime,
		Difficulty:      difficulty,
		YieldAmount:     yield,
		YieldUnit:       item.YieldUnit,
		SalePrice:       sale,
		WastePercentage: waste,
		Allergens:       item.Allergens,
		Status:          models.RecipeActive,
	}}

	for _, line := range item.Lines {
		quantity, err := decimalOrZero(line.Quantity)
		if err != nil {
			return fmt.Errorf("recipe %q line %q: %w", item.Name, line.Ingredient, err)
		}
		cost, err := decimalOrZero(line.Cost)
		if err != nil {
			return fmt.Errorf("recipe %q line %q: %w", item.Name, line.Ingredient, err)
		}
		lineDraft := store.LineDraft{
			IngredientName: line.Ingredient,
			Quantity:       quantity,
			Unit:           line.Unit,
			PrepDetail:     line.Prep,
			CostPerUnit:    cost,
		}
		if ingredient, ok := library[line.Ingredient]; ok {
			lineDraft.IngredientID = ingredient.ID
		}
		draft.Lines = append(draft.Lines, lineDraft)
	}

	if _, err := s.SaveRecipe(ctx, draft); err != nil {
		return fmt.Errorf("save recipe %q: %w", item.Name, err)
	}
	return nil
}

func decimalOrZero(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func nullDecimal(value string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
