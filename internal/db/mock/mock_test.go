package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kitchenos/internal/costing"
	"kitchenos/internal/store"
	"kitchenos/models"
)

func TestNewSeedsKitchen(t *testing.T) {
	ctx := context.Background()
	database, err := New(ctx)
	require.NoError(t, err)
	s := store.NewGorm(database)

	user, err := s.FindUserByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DemoPassword)))

	outlets, err := s.ListOutlets(ctx)
	require.NoError(t, err)
	require.Len(t, outlets, 2)

	units, err := s.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 6)

	recipes, err := s.ListRecipes(ctx, store.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 6)
	for _, recipe := range recipes {
		assert.Regexp(t, `^RCP-\d{4}-\d{3}$`, recipe.RecipeNo)
		assert.NotEmpty(t, recipe.Ingredients, recipe.Name)
		assert.True(t, costing.ForRecipe(recipe).TotalCost.IsPositive(), recipe.Name)
	}

	uncategorized, err := s.ListRecipes(ctx, store.RecipeFilter{Uncategorized: true})
	require.NoError(t, err)
	require.Len(t, uncategorized, 1)
	assert.Equal(t, "Günün Tatlısı", uncategorized[0].Name)
}

func TestSeedAddsLineOnlyIngredients(t *testing.T) {
	ctx := context.Background()
	database, err := New(ctx)
	require.NoError(t, err)

	var vanilla models.Ingredient
	require.NoError(t, database.Where("name = ?", "Vanilya").First(&vanilla).Error)
	assert.Equal(t, "adet", vanilla.BaseUnit)
	assert.Equal(t, "35", vanilla.CostPerUnit.String())

	var count int64
	require.NoError(t, database.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 15, count)
}

func TestMockDatabasesAreIsolated(t *testing.T) {
	ctx := context.Background()
	first, err := New(ctx)
	require.NoError(t, err)
	second, err := New(ctx)
	require.NoError(t, err)

	require.NoError(t, first.Where("1 = 1").Delete(&models.Unit{}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Unit{}).Count(&count).Error)
	assert.EqualValues(t, 6, count)
}
