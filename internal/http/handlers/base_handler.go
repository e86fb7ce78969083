// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carshare/internal/maps"
	"carshare/internal/modules/pricing"
	"carshare/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePricingError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrNotFound), errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRouting):
		writeError(c, http.StatusBadGateway, "routing provider unavailable")
	case errors.Is(err, pricing.ErrConfiguration):
		writeError(c, http.StatusInternalServerError, "rate configuration error")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func validVehicle(v pricing.VehicleClass) bool {
	switch v {
	case "", pricing.VehicleCompact, pricing.VehicleLarge, pricing.VehicleOversized:
		return true
	}
	return false
}
