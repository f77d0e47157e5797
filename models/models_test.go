package models

import (
	"encoding/json"
	"testing"
)

func TestAllergenFlagsFollowSchemaOrder(t *testing.T) {
	t.Parallel()

	flags := Allergens{}.Flags()
	if len(flags) != len(AllergenKeys) {
		t.Fatalf("Flags() returned %d entries, want %d", len(flags), len(AllergenKeys))
	}
	for i, flag := range flags {
		if flag.Key != AllergenKeys[i] {
			t.Fatalf("flag %d = %q, want %q", i, flag.Key, AllergenKeys[i])
		}
	}
}

func TestAllergensDecodeDropsUnknownKeys(t *testing.T) {
	t.Parallel()

	var allergens Allergens
	if err := json.Unmarshal([]byte(`{"gluten":true,"sesame":true,"plutonium":true}`), &allergens); err != nil {
		t.Fatalf("unmarshal allergens: %v", err)
	}
	if !allergens.Has(AllergenGluten) || !allergens.Has(AllergenSesame) {
		t.Fatalf("expected gluten and sesame flags, got %+v", allergens)
	}
	if allergens.Has(AllergenMilk) {
		t.Fatal("expected missing key to decode as false")
	}

	encoded, err := json.Marshal(allergens)
	if err != nil {
		t.Fatalf("marshal allergens: %v", err)
	}
	var keys map[string]bool
	if err := json.Unmarshal(encoded, &keys); err != nil {
		t.Fatalf("unmarshal keys: %v", err)
	}
	if len(keys) != 15 {
		t.Fatalf("encoded allergens carry %d keys, want 15", len(keys))
	}
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if status, err := ParseOutletStatus(""); err != nil || status != OutletActive {
		t.Fatalf("ParseOutletStatus(\"\") = %q, %v", status, err)
	}
	if _, err := ParseOutletStatus("demolished"); err == nil {
		t.Fatal("expected error for unknown outlet status")
	}
	if status, err := ParseRecipeStatus("archived"); err != nil || status != RecipeArchived {
		t.Fatalf("ParseRecipeStatus(archived) = %q, %v", status, err)
	}
	if d, err := ParseDifficulty(""); err != nil || d != nil {
		t.Fatalf("ParseDifficulty(\"\") = %v, %v", d, err)
	}
	if d, err := ParseDifficulty("Hard"); err != nil || d == nil || *d != DifficultyHard {
		t.Fatalf("ParseDifficulty(Hard) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("hard"); err == nil {
		t.Fatal("expected difficulty parsing to be case sensitive")
	}
}

func TestRecipeWasteDefaultsToFive(t *testing.T) {
	t.Parallel()

	var recipe Recipe
	if got := recipe.Waste(); !got.Equal(DefaultWastePercentage) {
		t.Fatalf("Waste() = %s, want %s", got, DefaultWastePercentage)
	}
}

func TestRecipeIngredientDisplayUnit(t *testing.T) {
	t.Parallel()

	line := RecipeIngredient{Ingredient: &Ingredient{BaseUnit: "kg"}}
	if got := line.DisplayUnit(); got != "kg" {
		t.Fatalf("DisplayUnit() = %q, want kg", got)
	}
	line.Unit = "g"
	if got := line.DisplayUnit(); got != "g" {
		t.Fatalf("DisplayUnit() = %q, want g", got)
	}
	if got := (RecipeIngredient{}).DisplayUnit(); got != "-" {
		t.Fatalf("DisplayUnit() = %q, want -", got)
	}
}
