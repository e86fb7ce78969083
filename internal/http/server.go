// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carshare/internal/http/handlers"
	"carshare/internal/http/middleware"
	"carshare/internal/metrics"
	"carshare/internal/modules/pricing"
	"carshare/internal/service"
)

type ServerDeps struct {
	Pricing *pricing.Service
	// Planner is optional; without it /api/trips/plan answers 503.
	Planner *service.TripPlanner
	Log     *slog.Logger
}

type Server struct {
	pricing *pricing.Service
	planner *service.TripPlanner
	log     *slog.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		pricing: deps.Pricing,
		planner: deps.Planner,
		log:     deps.Log,
	}
}

func (s *Server) Routes() http.Handler {
	metrics.Register()

	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log), middleware.Metrics())

	estimates := handlers.NewEstimateHandler(s.pricing)
	r.POST("/api/estimates", estimates.Create)
	r.POST("/api/estimates/batch", estimates.Batch)
	r.GET("/api/estimates/:id", estimates.Get)
	r.GET("/api/rates", estimates.Rates)

	plans := handlers.NewPlanHandler(s.planner)
	r.POST("/api/trips/plan", plans.Plan)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	return r
}
