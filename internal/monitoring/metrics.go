package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"banquetprep/internal/planning"
)

// Collector owns the Prometheus registry of the planner. A nil *Collector
// records nothing.
type Collector struct {
	registry *prometheus.Registry

	scaleRequests    *prometheus.CounterVec
	advisories       *prometheus.CounterVec
	purchaseWarnings *prometheus.CounterVec
	omittedEvents    prometheus.Counter
	divisionMinutes  *prometheus.GaugeVec
	requestDuration  *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		scaleRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_scale_requests_total",
				Help: "Recipe scaling requests by outcome",
			},
			[]string{"outcome"},
		),
		advisories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_scale_advisories_total",
				Help: "Advisories attached to scaled recipes",
			},
			[]string{"kind"},
		),
		purchaseWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_purchase_warnings_total",
				Help: "Data-quality warnings raised while resolving purchases",
			},
			[]string{"kind"},
		),
		omittedEvents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planner_omitted_events_total",
				Help: "Events left out of division sheets",
			},
		),
		divisionMinutes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "planner_division_minutes",
				Help: "Estimated prep minutes of the last planned day per division",
			},
			[]string{"division"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planner_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	c.registry.MustRegister(
		c.scaleRequests,
		c.advisories,
		c.purchaseWarnings,
		c.omittedEvents,
		c.divisionMinutes,
		c.requestDuration,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordScale counts a scaling request and the advisories it produced.
func (c *Collector) RecordScale(scaled *planning.ScaledRecipe, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.scaleRequests.WithLabelValues("error").Inc()
		return
	}
	c.scaleRequests.WithLabelValues("ok").Inc()
	for _, a := range scaled.CriticalAdjustments {
		c.advisories.WithLabelValues(a).Inc()
	}
	for _, q := range scaled.QualityConsiderations {
		if q == planning.AdvisoryBatchCooking {
			c.advisories.WithLabelValues(q).Inc()
		}
	}
}

// RecordPurchaseOrder counts the warnings of a resolved order.
func (c *Collector) RecordPurchaseOrder(order *planning.PurchaseOrder) {
	if c == nil || order == nil {
		return
	}
	for _, w := range order.Warnings {
		c.purchaseWarnings.WithLabelValues(string(w.Kind)).Inc()
	}
}

// RecordDayPlan counts omissions and publishes per-division minutes.
func (c *Collector) RecordDayPlan(plan *planning.DayPlan) {
	if c == nil || plan == nil {
		return
	}
	c.omittedEvents.Add(float64(len(plan.Omissions)))
	c.divisionMinutes.Reset()
	for _, s := range plan.Sheets {
		c.divisionMinutes.WithLabelValues(s.Division).Set(float64(s.TotalEstimatedMinutes))
	}
}

// GinMiddleware observes request latency by route template.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		if c == nil {
			return
		}
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requestDuration.
			WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
