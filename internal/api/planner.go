// Package api exposes the planning engine over HTTP.
package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"banquetprep/internal/live"
	"banquetprep/internal/models"
	"banquetprep/internal/monitoring"
	"banquetprep/internal/planning"
	"banquetprep/internal/prep"
)

// PlannerAPI is the HTTP front of the planner.
type PlannerAPI struct {
	Router  *gin.Engine
	Planner *prep.Planner
	Feed    *live.Feed
	log     *slog.Logger
}

// NewPlannerAPI builds the router. metrics and feed may be nil.
func NewPlannerAPI(planner *prep.Planner, feed *live.Feed, metrics *monitoring.Collector, log *slog.Logger) *PlannerAPI {
	if log == nil {
		log = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery(), AccessLog(log))
	if metrics != nil {
		router.Use(metrics.GinMiddleware())
	}

	api := &PlannerAPI{
		Router:  router,
		Planner: planner,
		Feed:    feed,
		log:     log,
	}
	api.setupRoutes()
	return api
}

func (a *PlannerAPI) setupRoutes() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.Router.GET("/status", a.GetStatus)
	if a.Feed != nil {
		a.Router.GET("/ws", a.Feed.Handle)
	}

	v1 := a.Router.Group("/api/v1")
	{
		// Recipes
		v1.GET("/recipes", a.ListRecipes)
		v1.GET("/recipes/:id", a.GetRecipe)
		v1.POST("/recipes/:id/scale", a.ScaleRecipe)

		// Purchasing
		v1.POST("/purchases", a.CreatePurchaseOrder)
		v1.GET("/purchases", a.DayPurchaseOrder)

		// Timelines and schedules
		v1.POST("/timeline", a.ExtractTimeline)
		v1.POST("/schedule", a.BuildSchedule)

		// Events and division sheets
		v1.GET("/events", a.ListEvents)
		v1.GET("/divisions", a.GetDivisions)
		v1.GET("/divisions/export", a.ExportDivisions)
	}
}

// ScaleRequest is the body of POST /recipes/:id/scale.
type ScaleRequest struct {
	Guests           int     `json:"guests"`
	BufferPercentage float64 `json:"buffer_percentage"`
}

// PurchaseOrderRequest is the body of POST /purchases.
type PurchaseOrderRequest struct {
	Items []prep.PurchaseRequest `json:"items"`
}

// TimelineRequest is the body of POST /timeline.
type TimelineRequest struct {
	Notes []string `json:"notes"`
}

// ScheduleRequest is the body of POST /schedule.
type ScheduleRequest struct {
	Range       string   `json:"range"`
	StepMinutes int      `json:"step_minutes"`
	Notes       []string `json:"notes"`
}

// ScheduleResponse is a built grid.
type ScheduleResponse struct {
	Start int                 `json:"start"`
	End   int                 `json:"end"`
	Step  int                 `json:"step"`
	Slots []planning.TimeSlot `json:"slots"`
}

// ListRecipes returns every catalog recipe.
func (a *PlannerAPI) ListRecipes(c *gin.Context) {
	recipes, err := a.Planner.Catalog().ListRecipes(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe by ID.
func (a *PlannerAPI) GetRecipe(c *gin.Context) {
	recipe, err := a.Planner.Catalog().GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ScaleRecipe scales a recipe for a guest count and buffer.
func (a *PlannerAPI) ScaleRecipe(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scaled, err := a.Planner.ScaleRecipe(c.Request.Context(), c.Param("id"), req.Guests, req.BufferPercentage)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scaled)
}

// CreatePurchaseOrder resolves vendor packs for a list of recipe requests.
func (a *PlannerAPI) CreatePurchaseOrder(c *gin.Context) {
	var req PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
		return
	}
	order, err := a.Planner.Purchases(c.Request.Context(), req.Items)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DayPurchaseOrder resolves vendor packs for every event on a date.
func (a *PlannerAPI) DayPurchaseOrder(c *gin.Context) {
	day, ok := a.date(c)
	if !ok {
		return
	}
	order, err := a.Planner.DayPurchases(c.Request.Context(), day)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ExtractTimeline returns the clock hints found in free-text notes.
func (a *PlannerAPI) ExtractTimeline(c *gin.Context) {
	var req TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hints": planning.ExtractTimeline(req.Notes...).Hints()})
}

// BuildSchedule builds a time grid for a range decorated with note hints.
func (a *PlannerAPI) BuildSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := planning.ParseRange(req.Range)
	if err != nil {
		a.fail(c, err)
		return
	}
	step := req.StepMinutes
	if step == 0 {
		step = planning.DefaultStepMinutes
	}
	step = planning.ClampStep(step)
	c.JSON(http.StatusOK, ScheduleResponse{
		Start: start,
		End:   end,
		Step:  step,
		Slots: planning.BuildGrid(start, end, step, planning.ExtractTimeline(req.Notes...)),
	})
}

// ListEvents returns the events booked on a date.
func (a *PlannerAPI) ListEvents(c *gin.Context) {
	day, ok := a.date(c)
	if !ok {
		return
	}
	events, err := a.Planner.Catalog().EventsOn(c.Request.Context(), day)
	if err != nil {
		a.fail(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GetDivisions returns the day plan with division sheets and event grids.
func (a *PlannerAPI) GetDivisions(c *gin.Context) {
	day, ok := a.date(c)
	if !ok {
		return
	}
	plan, err := a.Planner.PlanDay(c.Request.Context(), day)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportDivisions writes the day's division sheets as CSV, one row per task.
func (a *PlannerAPI) ExportDivisions(c *gin.Context) {
	day, ok := a.date(c)
	if !ok {
		return
	}
	plan, err := a.Planner.PlanDay(c.Request.Context(), day)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=divisions-%s.csv", plan.Date))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"division", "event_id", "title", "quantity", "unit", "estimated_minutes"})
	for _, sheet := range plan.Sheets {
		for _, task := range sheet.Tasks {
			w.Write([]string{
				sheet.Division,
				task.EventID,
				task.Title,
				strconv.FormatFloat(task.Quantity, 'f', -1, 64),
				task.Unit,
				strconv.Itoa(task.EstimatedMinutes),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		a.log.Error("Failed to write division export", "date", plan.Date, "error", err)
	}
}

// GetStatus returns uptime and the figures of the last planned day.
func (a *PlannerAPI) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, a.Planner.Status())
}

// date reads the date query parameter, defaulting to today.
func (a *PlannerAPI) date(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

func (a *PlannerAPI) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, planning.ErrInvalidScalingInput), errors.Is(err, planning.ErrUnparsableTime):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
