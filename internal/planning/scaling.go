package planning

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"banquetprep/internal/models"
)

// Advisory strings attached to a ScaledRecipe.
const (
	AdvisoryAboveMaxScale = "Exceeds maximum recommended scale"
	AdvisoryBelowMinScale = "Below minimum recommended scale"
	AdvisoryBatchCooking  = "Consider batch cooking"
)

const (
	// thresholdCap is the largest multiplier a threshold ingredient follows.
	thresholdCap = 2.0
	// batchCookingMultiplier is the scale above which batch cooking is advised.
	batchCookingMultiplier = 5.0
)

// ScaledIngredient is an ingredient line after scaling.
type ScaledIngredient struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Unit             string                 `json:"unit"`
	ScalingBehavior  models.ScalingBehavior `json:"scaling_behavior"`
	Vendor           string                 `json:"vendor,omitempty"`
	Technique        string                 `json:"technique,omitempty"`
	OriginalAmount   float64                `json:"original_amount"`
	ScaledAmount     float64                `json:"scaled_amount"`
	ScaledCost       decimal.Decimal        `json:"scaled_cost"`
	PurchaseQuantity int64                  `json:"purchase_quantity"`
}

// ScaledRecipe is a recipe sized for an event. It is always re-derivable
// from (recipe, target servings, buffer percentage).
type ScaledRecipe struct {
	RecipeID              string             `json:"recipe_id"`
	Name                  string             `json:"name"`
	Division              string             `json:"division"`
	TargetServings        int                `json:"target_servings"`
	FinalServings         int                `json:"final_servings"`
	ScalingMultiplier     float64            `json:"scaling_multiplier"`
	BufferPercentage      float64            `json:"buffer_percentage"`
	ScaledIngredients     []ScaledIngredient `json:"scaled_ingredients"`
	ScaledCost            decimal.Decimal    `json:"scaled_cost"`
	ScaledPrepTime        int                `json:"scaled_prep_time"`
	ScaledCookTime        int                `json:"scaled_cook_time"`
	CriticalAdjustments   []string           `json:"critical_adjustments"`
	QualityConsiderations []string           `json:"quality_considerations"`
}

// FinalServings applies the buffer to the guest count:
// ceil(target * (1 + buffer/100)).
func FinalServings(target int, bufferPercentage float64) int {
	raw := float64(target) * (100 + bufferPercentage) / 100
	// Strip binary noise so 100 guests at 10% is 110, not 111.
	return int(math.Ceil(round(raw, 9)))
}

// ScaleAmount applies a scaling behavior to a base amount. Unknown behaviors
// scale linearly.
func ScaleAmount(amount, multiplier float64, behavior models.ScalingBehavior) float64 {
	switch behavior {
	case models.ScalingFixed:
		return amount
	case models.ScalingLogarithmic:
		return amount * math.Log(multiplier+1)
	case models.ScalingThreshold:
		if multiplier > thresholdCap {
			return amount * thresholdCap
		}
		return amount * multiplier
	default:
		return amount * multiplier
	}
}

// ScaleRecipe sizes a recipe for targetServings guests plus a buffer.
func ScaleRecipe(recipe models.Recipe, targetServings int, bufferPercentage float64) (*ScaledRecipe, error) {
	if targetServings <= 0 {
		return nil, fmt.Errorf("%w: target servings must be positive, got %d", ErrInvalidScalingInput, targetServings)
	}
	if recipe.BaseServings <= 0 {
		return nil, fmt.Errorf("%w: recipe %s has base servings %d", ErrInvalidScalingInput, recipe.RecipeID, recipe.BaseServings)
	}
	if bufferPercentage < 0 || math.IsNaN(bufferPercentage) || math.IsInf(bufferPercentage, 0) {
		return nil, fmt.Errorf("%w: buffer percentage must be a non-negative number, got %v", ErrInvalidScalingInput, bufferPercentage)
	}

	ingredients, err := recipe.GetIngredients()
	if err != nil {
		return nil, err
	}

	final := FinalServings(targetServings, bufferPercentage)
	multiplier := float64(final) / float64(recipe.BaseServings)

	scaled := &ScaledRecipe{
		RecipeID:              recipe.RecipeID,
		Name:                  recipe.Name,
		Division:              recipe.Division,
		TargetServings:        targetServings,
		FinalServings:         final,
		ScalingMultiplier:     multiplier,
		BufferPercentage:      bufferPercentage,
		ScaledIngredients:     make([]ScaledIngredient, 0, len(ingredients)),
		ScaledCost:            recipe.BaseCost.Mul(decimal.NewFromFloat(multiplier)).Round(2),
		ScaledPrepTime:        scaleMinutes(recipe.PrepTime, multiplier),
		ScaledCookTime:        scaleMinutes(recipe.CookTime, multiplier),
		CriticalAdjustments:   []string{},
		QualityConsiderations: []string{},
	}

	for _, ing := range ingredients {
		if ing.ScalingBehavior != "" && !ing.ScalingBehavior.IsValid() {
			scaled.QualityConsiderations = append(scaled.QualityConsiderations,
				fmt.Sprintf("Unknown scaling behavior %q for %s, scaled linearly", ing.ScalingBehavior, ing.Name))
		}
		amount := round(ScaleAmount(ing.Amount, multiplier, ing.ScalingBehavior), 3)
		scaled.ScaledIngredients = append(scaled.ScaledIngredients, ScaledIngredient{
			ID:               ing.ID,
			Name:             ing.Name,
			Unit:             ing.Unit,
			ScalingBehavior:  ing.ScalingBehavior,
			Vendor:           ing.Vendor,
			Technique:        ing.Technique,
			OriginalAmount:   ing.Amount,
			ScaledAmount:     amount,
			ScaledCost:       ing.UnitCost.Mul(decimal.NewFromFloat(amount)).Round(2),
			PurchaseQuantity: int64(math.Ceil(amount)),
		})
	}

	if recipe.MaxScale > 0 && multiplier > recipe.MaxScale {
		scaled.CriticalAdjustments = append(scaled.CriticalAdjustments, AdvisoryAboveMaxScale)
	}
	if recipe.MinScale > 0 && multiplier < recipe.MinScale {
		scaled.CriticalAdjustments = append(scaled.CriticalAdjustments, AdvisoryBelowMinScale)
	}
	if multiplier > batchCookingMultiplier {
		scaled.QualityConsiderations = append(scaled.QualityConsiderations, AdvisoryBatchCooking)
	}

	return scaled, nil
}

// scaleMinutes grows labor time with the square root of the batch multiplier.
func scaleMinutes(minutes int, multiplier float64) int {
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(round(float64(minutes)*math.Sqrt(multiplier), 9)))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
