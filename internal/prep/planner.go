package prep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"banquetprep/internal/models"
	"banquetprep/internal/monitoring"
	"banquetprep/internal/planning"
)

// Catalog is the read-only view of the stores the planner consumes.
type Catalog interface {
	RecipeCatalog
	planning.DocumentLoader
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	EventsOn(ctx context.Context, day time.Time) ([]models.Event, error)
	VendorPacks(ctx context.Context) ([]models.VendorPack, error)
}

// Options tunes the planner.
type Options struct {
	DefaultBuffer float64
	StepMinutes   int
}

// PurchaseRequest asks for one recipe at a guest count.
type PurchaseRequest struct {
	RecipeID         string  `json:"recipe_id"`
	Guests           int     `json:"guests"`
	BufferPercentage float64 `json:"buffer_percentage"`
}

// Planner answers planning questions against the catalogs. Every call
// recomputes from the current catalog contents.
type Planner struct {
	catalog    Catalog
	generator  *Generator
	aggregator *planning.Aggregator
	metrics    *monitoring.Collector
	monitor    *monitoring.Monitor
	log        *slog.Logger
}

// NewPlanner wires a planner. metrics and monitor may be nil.
func NewPlanner(catalog Catalog, opts Options, metrics *monitoring.Collector, monitor *monitoring.Monitor, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	gen := &Generator{
		Recipes:       catalog,
		DefaultBuffer: opts.DefaultBuffer,
		Log:           log,
		Metrics:       metrics,
	}
	return &Planner{
		catalog:   catalog,
		generator: gen,
		aggregator: &planning.Aggregator{
			Loader:      catalog,
			Generator:   gen,
			StepMinutes: opts.StepMinutes,
			Log:         log,
		},
		metrics: metrics,
		monitor: monitor,
		log:     log,
	}
}

// Catalog returns the catalog the planner reads from.
func (p *Planner) Catalog() Catalog {
	return p.catalog
}

// Status returns the in-process planning snapshot.
func (p *Planner) Status() monitoring.Status {
	return p.monitor.Status()
}

// ScaleRecipe scales one catalog recipe.
func (p *Planner) ScaleRecipe(ctx context.Context, recipeID string, guests int, buffer float64) (*planning.ScaledRecipe, error) {
	recipe, err := p.catalog.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	scaled, err := planning.ScaleRecipe(*recipe, guests, buffer)
	p.metrics.RecordScale(scaled, err)
	if err != nil {
		return nil, err
	}
	p.log.Debug("Recipe scaled",
		"recipe_id", recipeID,
		"guests", guests,
		"final_servings", scaled.FinalServings,
		"multiplier", scaled.ScalingMultiplier,
	)
	return scaled, nil
}

// Purchases resolves one order across several recipe requests. Needs are
// summed across recipes before pack rounding.
func (p *Planner) Purchases(ctx context.Context, reqs []PurchaseRequest) (*planning.PurchaseOrder, error) {
	var needs []planning.ScaledIngredient
	for _, req := range reqs {
		scaled, err := p.ScaleRecipe(ctx, req.RecipeID, req.Guests, req.BufferPercentage)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", req.RecipeID, err)
		}
		needs = append(needs, scaled.ScaledIngredients...)
	}
	return p.resolve(ctx, needs, nil)
}

// DayPurchases builds one purchase order for every event on day. Events that
// cannot be expanded are reported as warnings.
func (p *Planner) DayPurchases(ctx context.Context, day time.Time) (*planning.PurchaseOrder, error) {
	events, err := p.catalog.EventsOn(ctx, day)
	if err != nil {
		return nil, err
	}

	var needs []planning.ScaledIngredient
	var skipped []planning.Warning
	skip := func(ev models.Event, reason string) {
		p.log.Warn("Event left out of purchase order", "event_id", ev.EventID, "reason", reason)
		skipped = append(skipped, planning.Warning{
			Kind:    planning.EventSkipped,
			Item:    ev.EventID,
			Message: reason,
		})
	}
	for _, ev := range events {
		if ev.DocumentID == "" {
			skip(ev, "no linked document")
			continue
		}
		doc, err := p.catalog.LoadDocument(ctx, ev.DocumentID)
		if err != nil {
			skip(ev, "document could not be loaded: "+err.Error())
			continue
		}
		scaled, err := p.generator.ScaleMenu(ctx, ev, doc)
		if err != nil {
			skip(ev, "menu could not be scaled: "+err.Error())
			continue
		}
		for _, sr := range scaled {
			needs = append(needs, sr.ScaledIngredients...)
		}
	}
	return p.resolve(ctx, needs, skipped)
}

func (p *Planner) resolve(ctx context.Context, needs []planning.ScaledIngredient, extra []planning.Warning) (*planning.PurchaseOrder, error) {
	packs, err := p.catalog.VendorPacks(ctx)
	if err != nil {
		return nil, err
	}
	order, err := planning.ResolvePurchases(needs, planning.NewVendorCatalog(packs))
	if err != nil {
		return nil, err
	}
	order.Warnings = append(order.Warnings, extra...)
	p.metrics.RecordPurchaseOrder(order)
	for _, w := range order.Warnings {
		p.log.Warn("Purchase warning", "kind", w.Kind, "item", w.Item, "message", w.Message)
	}
	return order, nil
}

// PlanDay builds the division sheets and schedules for day.
func (p *Planner) PlanDay(ctx context.Context, day time.Time) (*planning.DayPlan, error) {
	events, err := p.catalog.EventsOn(ctx, day)
	if err != nil {
		return nil, err
	}
	plan := p.aggregator.Aggregate(ctx, day, events)
	p.metrics.RecordDayPlan(plan)
	p.monitor.RecordDayPlan(plan)
	p.log.Info("Day planned",
		"date", plan.Date,
		"events", len(plan.Events),
		"divisions", len(plan.Sheets),
		"omissions", len(plan.Omissions),
	)
	return plan, nil
}
