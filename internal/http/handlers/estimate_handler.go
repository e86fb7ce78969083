// README: Estimate handlers: single comparison, batch aggregation, stored quote lookup, rate table.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carshare/internal/metrics"
	"carshare/internal/modules/pricing"
)

// maxBatchTrips bounds POST /api/estimates/batch.
const maxBatchTrips = 500

type EstimateHandler struct {
	pricing *pricing.Service
}

func NewEstimateHandler(svc *pricing.Service) *EstimateHandler {
	return &EstimateHandler{pricing: svc}
}

// Create handles POST /api/estimates.
func (h *EstimateHandler) Create(c *gin.Context) {
	var trip pricing.TripInput
	if err := c.ShouldBindJSON(&trip); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !validVehicle(trip.Vehicle) {
		writeError(c, http.StatusBadRequest, "unknown vehicle class")
		return
	}
	q, err := h.pricing.Compare(c.Request.Context(), trip)
	if err != nil {
		writePricingError(c, err)
		return
	}
	metrics.Quotes.WithLabelValues(q.Result.CheapestOption).Inc()
	writeJSON(c, http.StatusCreated, q)
}

type batchReq struct {
	Trips []pricing.TripInput `json:"trips"`
}

// Batch handles POST /api/estimates/batch.
func (h *EstimateHandler) Batch(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Trips) > maxBatchTrips {
		writeError(c, http.StatusBadRequest, "too many trips")
		return
	}
	for _, t := range req.Trips {
		if !validVehicle(t.Vehicle) {
			writeError(c, http.StatusBadRequest, "unknown vehicle class")
			return
		}
	}
	res, err := h.pricing.Aggregate(c.Request.Context(), req.Trips)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Get handles GET /api/estimates/:id.
func (h *EstimateHandler) Get(c *gin.Context) {
	q, err := h.pricing.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// Rates handles GET /api/rates.
func (h *EstimateHandler) Rates(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.pricing.Rates())
}
