package models

// Allergen identifies one flag of the allergen matrix.
type Allergen string

const (
	AllergenGluten    Allergen = "gluten"
	AllergenLactose   Allergen = "lactose"
	AllergenYeast     Allergen = "yeast"
	AllergenEgg       Allergen = "egg"
	AllergenFish      Allergen = "fish"
	AllergenMilk      Allergen = "milk"
	AllergenPeanut    Allergen = "peanut"
	AllergenShellfish Allergen = "shellfish"
	AllergenSoya      Allergen = "soya"
	AllergenNuts      Allergen = "nuts"
	AllergenWheat     Allergen = "wheat"
	AllergenCelery    Allergen = "celery"
	AllergenMustard   Allergen = "mustard"
	AllergenSesame    Allergen = "sesame"
	AllergenSulphites Allergen = "sulphites"
)

// AllergenKeys is the fixed schema order of the allergen matrix.
var AllergenKeys = []Allergen{
	AllergenGluten,
	AllergenLactose,
	AllergenYeast,
	AllergenEgg,
	AllergenFish,
	AllergenMilk,
	AllergenPeanut,
	AllergenShellfish,
	AllergenSoya,
	AllergenNuts,
	AllergenWheat,
	AllergenCelery,
	AllergenMustard,
	AllergenSesame,
	AllergenSulphites,
}

// Allergens is the fixed 15-flag allergen matrix attached to every recipe.
// Unknown JSON keys are ignored and absent keys decode as false.
type Allergens struct {
	Gluten    bool `json:"gluten"`
	Lactose   bool `json:"lactose"`
	Yeast     bool `json:"yeast"`
	Egg       bool `json:"egg"`
	Fish      bool `json:"fish"`
	Milk      bool `json:"milk"`
	Peanut    bool `json:"peanut"`
	Shellfish bool `json:"shellfish"`
	Soya      bool `json:"soya"`
	Nuts      bool `json:"nuts"`
	Wheat     bool `json:"wheat"`
	Celery    bool `json:"celery"`
	Mustard   bool `json:"mustard"`
	Sesame    bool `json:"sesame"`
	Sulphites bool `json:"sulphites"`
}

// AllergenFlag pairs an allergen key with its value.
type AllergenFlag struct {
	Key    Allergen
	Active bool
}

// Flags returns every allergen with its value in AllergenKeys order.
func (a Allergens) Flags() []AllergenFlag {
	return []AllergenFlag{
		{AllergenGluten, a.Gluten},
		{AllergenLactose, a.Lactose},
		{AllergenYeast, a.Yeast},
		{AllergenEgg, a.Egg},
		{AllergenFish, a.Fish},
		{AllergenMilk, a.Milk},
		{AllergenPeanut, a.Peanut},
		{AllergenShellfish, a.Shellfish},
		{AllergenSoya, a.Soya},
		{AllergenNuts, a.Nuts},
		{AllergenWheat, a.Wheat},
		{AllergenCelery, a.Celery},
		{AllergenMustard, a.Mustard},
		{AllergenSesame, a.Sesame},
		{AllergenSulphites, a.Sulphites},
	}
}

// Has reports whether the given allergen flag is set.
func (a Allergens) Has(key Allergen) bool {
	for _, flag := range a.Flags() {
		if flag.Key == key {
			return flag.Active
		}
	}
	return false
}
