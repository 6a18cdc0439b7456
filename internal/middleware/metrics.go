package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level counters, registered once at package init.
var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "divespot_redis_errors_total",
		Help: "Total number of failed Redis commands.",
	}, []string{"command"})

	// PostsCreated counts successfully created dive posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "divespot_posts_created_total",
		Help: "Total number of dive posts created.",
	})

	// CounterRecalcs counts engagement counter recalculations by trigger.
	CounterRecalcs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "divespot_counter_recalculations_total",
		Help: "Total number of post counter recalculations by trigger.",
	}, []string{"trigger"})

	// CacheLookups counts cache-aside lookups by entity and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "divespot_cache_lookups_total",
		Help: "Cache-aside lookups by entity and hit/miss result.",
	}, []string{"entity", "result"})

	// ImageFallbacks counts image proxy probe outcomes.
	ImageFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "divespot_image_proxy_attempts_total",
		Help: "Image proxy candidate probe outcomes.",
	}, []string{"outcome"})
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. fiberprometheus registers its collectors in the default registry, so
// repeated server construction (tests) reuses the first instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
