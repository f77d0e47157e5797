package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"kitchenos/models"
)

const recipeNumberPrefix = "RCP"

// FormatRecipeNumber renders RCP-<year>-<seq>, the sequence padded to three digits.
func FormatRecipeNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", recipeNumberPrefix, year, seq)
}

// ParseRecipeNumber splits a recipe number into its year and sequence.
func ParseRecipeNumber(value string) (year, seq int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 || parts[0] != recipeNumberPrefix {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, 0, false
	}
	return year, seq, true
}

// NextRecipeNumber derives the number following last. The sequence restarts
// at 001 when last is blank, unparsable or from another year.
func NextRecipeNumber(last string, now time.Time) string {
	year := now.Year()
	if lastYear, seq, ok := ParseRecipeNumber(last); ok && lastYear == year {
		return FormatRecipeNumber(year, seq+1)
	}
	return FormatRecipeNumber(year, 1)
}

// nextStoredRecipeNumber returns the number following the highest parseable
// sequence of now's year. Manual numbers that do not parse are skipped.
func nextStoredRecipeNumber(db *gorm.DB, now time.Time) (string, error) {
	var numbers []string
	err := db.Model(&models.Recipe{}).
		Where("recipe_no LIKE ?", fmt.Sprintf("%s-%d-%%", recipeNumberPrefix, now.Year())).
		Pluck("recipe_no", &numbers).Error
	if err != nil {
		return "", fmt.Errorf("load recipe numbers: %w", err)
	}

	highest := 0
	for _, number := range numbers {
		year, seq, ok := ParseRecipeNumber(number)
		if ok && year == now.Year() && seq > highest {
			highest = seq
		}
	}
	return NextRecipeNumber(FormatRecipeNumber(now.Year(), highest), now), nil
}
