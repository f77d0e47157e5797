package export

import (
	"strings"

	"kitchenos/models"
)

var allergenLabels = map[models.Allergen]string{
	models.AllergenGluten:    "Gluten",
	models.AllergenLactose:   "Laktoz",
	models.AllergenYeast:     "Maya",
	models.AllergenEgg:       "Yumurta",
	models.AllergenFish:      "Balık",
	models.AllergenMilk:      "Süt",
	models.AllergenPeanut:    "Yer Fıstığı",
	models.AllergenShellfish: "Kabuklu Deniz Ürünleri",
	models.AllergenSoya:      "Soya",
	models.AllergenNuts:      "Kuruyemiş",
	models.AllergenWheat:     "Buğday",
	models.AllergenCelery:    "Kereviz",
	models.AllergenMustard:   "Hardal",
	models.AllergenSesame:    "Susam",
	models.AllergenSulphites: "Sülfitler",
}

var outletStatusLabels = map[models.OutletStatus]string{
	models.OutletActive:      "Aktif",
	models.OutletInactive:    "Pasif",
	models.OutletMaintenance: "Bakımda",
	models.OutletClosed:      "Kapalı",
}

var recipeStatusLabels = map[models.RecipeStatus]string{
	models.RecipeActive:   "Aktif",
	models.RecipeInactive: "Pasif",
	models.RecipeArchived: "Arşivlenmiş",
}

var difficultyLabels = map[models.Difficulty]string{
	models.DifficultyEasy:   "Kolay",
	models.DifficultyMedium: "Orta",
	models.DifficultyHard:   "Zor",
}

// AllergenLabel returns the display label of an allergen key.
func AllergenLabel(key models.Allergen) string {
	return labelOrRaw(allergenLabels, key)
}

// OutletStatusLabel returns the display label of an outlet status.
func OutletStatusLabel(status models.OutletStatus) string {
	return labelOrRaw(outletStatusLabels, status)
}

// RecipeStatusLabel returns the display label of a recipe status.
func RecipeStatusLabel(status models.RecipeStatus) string {
	return labelOrRaw(recipeStatusLabels, status)
}

// DifficultyLabel returns the display label of an optional difficulty, "-" when unset.
func DifficultyLabel(difficulty *models.Difficulty) string {
	if difficulty == nil {
		return "-"
	}
	return labelOrRaw(difficultyLabels, *difficulty)
}

// ActiveAllergens lists the labels of the set flags in schema order.
func ActiveAllergens(allergens models.Allergens) []string {
	labels := []string{}
	for _, flag := range allergens.Flags() {
		if flag.Active {
			labels = append(labels, AllergenLabel(flag.Key))
		}
	}
	return labels
}

// AllergenSummary joins ActiveAllergens with commas, or returns none when empty.
func AllergenSummary(allergens models.Allergens, none string) string {
	labels := ActiveAllergens(allergens)
	if len(labels) == 0 {
		return none
	}
	return strings.Join(labels, ", ")
}

// labelOrRaw falls back to the raw value. The label tests walk the models
// enum lists so every declared value has an entry.
func labelOrRaw[K ~string](labels map[K]string, key K) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return string(key)
}
