// Package prep expands banquet event orders into division prep tasks and
// binds the planning engine to the recipe, event and vendor catalogs.
package prep

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"banquetprep/internal/models"
	"banquetprep/internal/planning"
)

// setupMinutes is added to every technique task for station setup and cleanup.
const setupMinutes = 5

// RecipeCatalog resolves recipes by their external identifier.
type RecipeCatalog interface {
	GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error)
}

// Generator derives division tasks from an event's menu.
type Generator struct {
	Recipes       RecipeCatalog
	DefaultBuffer float64
	Log           *slog.Logger
	Metrics       ScaleRecorder
}

// ScaleRecorder observes scaling outcomes.
type ScaleRecorder interface {
	RecordScale(scaled *planning.ScaledRecipe, err error)
}

var _ planning.TaskGenerator = (*Generator)(nil)

// ScaleMenu scales every recipe on the document for the event.
func (g *Generator) ScaleMenu(ctx context.Context, ev models.Event, doc *models.BanquetOrder) ([]*planning.ScaledRecipe, error) {
	menu, err := doc.GetMenu()
	if err != nil {
		return nil, err
	}
	buffer := doc.BufferPercentage
	if buffer == 0 {
		buffer = g.DefaultBuffer
	}

	scaled := make([]*planning.ScaledRecipe, 0, len(menu))
	for _, sel := range menu {
		recipe, err := g.Recipes.GetRecipe(ctx, sel.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", sel.RecipeID, err)
		}
		servings := sel.Servings
		if servings <= 0 {
			servings = ev.GuestCount
		}
		sr, err := planning.ScaleRecipe(*recipe, servings, buffer)
		if g.Metrics != nil {
			g.Metrics.RecordScale(sr, err)
		}
		if err != nil {
			return nil, fmt.Errorf("scale %s for event %s: %w", sel.RecipeID, ev.EventID, err)
		}
		scaled = append(scaled, sr)
	}
	return scaled, nil
}

// Tasks implements planning.TaskGenerator.
func (g *Generator) Tasks(ctx context.Context, ev models.Event, doc *models.BanquetOrder) ([]planning.DivisionTask, error) {
	scaled, err := g.ScaleMenu(ctx, ev, doc)
	if err != nil {
		return nil, err
	}

	var tasks []planning.DivisionTask
	for _, sr := range scaled {
		tasks = append(tasks, RecipeTasks(ev.EventID, sr)...)
		if g.Log != nil && len(sr.CriticalAdjustments) > 0 {
			g.Log.Warn("Recipe scaled outside recommended bounds",
				"event_id", ev.EventID,
				"recipe_id", sr.RecipeID,
				"multiplier", sr.ScalingMultiplier,
				"adjustments", sr.CriticalAdjustments,
			)
		}
	}
	return tasks, nil
}

// RecipeTasks lists the prep, cook and technique tasks for one scaled recipe.
func RecipeTasks(eventID string, sr *planning.ScaledRecipe) []planning.DivisionTask {
	tasks := []planning.DivisionTask{{
		Division:         sr.Division,
		Title:            "Prep " + sr.Name,
		Quantity:         float64(sr.FinalServings),
		Unit:             "servings",
		EstimatedMinutes: sr.ScaledPrepTime,
		EventID:          eventID,
	}}
	if sr.ScaledCookTime > 0 {
		tasks = append(tasks, planning.DivisionTask{
			Division:         sr.Division,
			Title:            "Cook " + sr.Name,
			Quantity:         float64(sr.FinalServings),
			Unit:             "servings",
			EstimatedMinutes: sr.ScaledCookTime,
			EventID:          eventID,
		})
	}

	for _, si := range sr.ScaledIngredients {
		technique := models.PrepTechnique(si.Technique)
		base := technique.BaseMinutes()
		if base == 0 {
			continue
		}
		tasks = append(tasks, planning.DivisionTask{
			Division:         models.DivisionPrep,
			Title:            technique.Title() + " " + si.Name,
			Quantity:         si.ScaledAmount,
			Unit:             si.Unit,
			EstimatedMinutes: TechniqueMinutes(technique, sr.ScalingMultiplier),
			EventID:          eventID,
		})
	}
	return tasks
}

// TechniqueMinutes estimates hands-on time for a technique at a batch
// multiplier: the base time grows with the square root of the batch, plus setup.
func TechniqueMinutes(technique models.PrepTechnique, multiplier float64) int {
	base := technique.BaseMinutes()
	if base == 0 {
		return 0
	}
	if multiplier < 0 {
		multiplier = 0
	}
	return int(math.Ceil(float64(base)*math.Sqrt(multiplier))) + setupMinutes
}
