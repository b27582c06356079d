package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// ScalingBehavior is the curve an ingredient follows as the batch grows.
type ScalingBehavior string

const (
	ScalingLinear      ScalingBehavior = "linear"
	ScalingLogarithmic ScalingBehavior = "logarithmic"
	ScalingThreshold   ScalingBehavior = "threshold"
	ScalingFixed       ScalingBehavior = "fixed"
)

// IsValid reports whether b is one of the known behaviors.
func (b ScalingBehavior) IsValid() bool {
	switch b {
	case ScalingLinear, ScalingLogarithmic, ScalingThreshold, ScalingFixed:
		return true
	}
	return false
}

// Recipe is a catalog recipe. It is read-only input to scaling.
type Recipe struct {
	gorm.Model
	RecipeID        string          `gorm:"column:recipe_id;unique_index" json:"recipe_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Division        string          `json:"division"`
	BaseServings    int             `json:"base_servings"`
	MinScale        float64         `json:"min_scale"`
	MaxScale        float64         `json:"max_scale"`
	PrepTime        int             `json:"prep_time"` // minutes for the base batch
	CookTime        int             `json:"cook_time"` // minutes for the base batch
	BaseCost        decimal.Decimal `gorm:"type:decimal(20,4)" json:"base_cost"`
	IngredientsJSON string          `gorm:"type:text" json:"-"`
	Tags            StringSlice     `gorm:"type:text" json:"tags"`
	// Transient fields (ignored by GORM)
	Ingredients []Ingredient `gorm:"-" json:"ingredients"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// GetIngredients returns the deserialized ingredients
func (r *Recipe) GetIngredients() ([]Ingredient, error) {
	if len(r.Ingredients) > 0 {
		return r.Ingredients, nil
	}
	var ingredients []Ingredient
	if r.IngredientsJSON == "" {
		return ingredients, nil
	}
	if err := json.Unmarshal([]byte(r.IngredientsJSON), &ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients of recipe %s: %w", r.RecipeID, err)
	}
	r.Ingredients = ingredients
	return ingredients, nil
}

// SetIngredients serializes the ingredients for storage
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	data, err := json.Marshal(ingredients)
	if err != nil {
		return err
	}
	r.IngredientsJSON = string(data)
	r.Ingredients = ingredients
	return nil
}

// BeforeSave keeps the stored JSON in step with the transient ingredient list.
func (r *Recipe) BeforeSave() error {
	if len(r.Ingredients) == 0 {
		return nil
	}
	return r.SetIngredients(r.Ingredients)
}

// Ingredient is one line of a recipe's base ingredient list.
type Ingredient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Amount          float64         `json:"amount"`
	Unit            string          `json:"unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ScalingBehavior ScalingBehavior `json:"scaling_behavior"`
	Vendor          string          `json:"vendor,omitempty"`
	Technique       string          `json:"technique,omitempty"`
}

// ValidateRecipe checks the fields scaling depends on.
func ValidateRecipe(r *Recipe) error {
	if r.RecipeID == "" {
		return fmt.Errorf("recipe ID is required")
	}
	if r.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	if r.BaseServings <= 0 {
		return fmt.Errorf("recipe base servings must be greater than 0")
	}
	if r.MaxScale > 0 && r.MinScale > r.MaxScale {
		return fmt.Errorf("recipe min scale %.2f exceeds max scale %.2f", r.MinScale, r.MaxScale)
	}
	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("ingredient name is required")
		}
		if ing.Amount < 0 {
			return fmt.Errorf("ingredient %s has a negative amount", ing.Name)
		}
		if ing.Technique != "" && !IsTechniqueValid(ing.Technique) {
			return fmt.Errorf("ingredient %s has unknown technique %q", ing.Name, ing.Technique)
		}
	}
	return nil
}
