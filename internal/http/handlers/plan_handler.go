// README: Trip planning handler (coordinates in, priced comparison out).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carshare/internal/metrics"
	"carshare/internal/modules/pricing"
	"carshare/internal/service"
	"carshare/internal/types"
)

type PlanHandler struct {
	planner *service.TripPlanner
}

// NewPlanHandler returns a handler answering 503 when planner is nil.
func NewPlanHandler(planner *service.TripPlanner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

type planReq struct {
	Origin            types.Point          `json:"origin"`
	Destination       types.Point          `json:"destination"`
	Start             *time.Time           `json:"start"`
	StayingMinutes    float64              `json:"staying_minutes"`
	BCAAMember        bool                 `json:"bcaa_member"`
	Vehicle           pricing.VehicleClass `json:"vehicle"`
	EV                bool                 `json:"ev"`
	RoundTripRequired bool                 `json:"round_trip_required"`
}

// Plan handles POST /api/trips/plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	if h.planner == nil {
		writeError(c, http.StatusServiceUnavailable, "trip planning is not configured")
		return
	}
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !validVehicle(req.Vehicle) {
		writeError(c, http.StatusBadRequest, "unknown vehicle class")
		return
	}

	cmd := service.PlanRequest{
		Origin:            req.Origin,
		Destination:       req.Destination,
		StayingMinutes:    req.StayingMinutes,
		BCAAMember:        req.BCAAMember,
		Vehicle:           req.Vehicle,
		EV:                req.EV,
		RoundTripRequired: req.RoundTripRequired,
	}
	if req.Start != nil {
		cmd.Start = *req.Start
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.planner.Plan(ctx, cmd)
	if err != nil {
		writePricingError(c, err)
		return
	}
	metrics.Quotes.WithLabelValues(res.Quote.Result.CheapestOption).Inc()
	writeJSON(c, http.StatusCreated, res)
}
