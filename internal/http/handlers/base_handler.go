// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking/internal/modules/allocation"
	"parking/internal/modules/lot"
	"parking/internal/modules/pricing"
	"parking/internal/modules/vehicle"
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

// writeDomainError maps module sentinels to status codes. Unknown errors are
// logged through gin and answered with a generic 500.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lot.ErrBadRequest),
		errors.Is(err, vehicle.ErrBadRequest),
		errors.Is(err, allocation.ErrBadRequest),
		errors.Is(err, pricing.ErrInvalidRate),
		errors.Is(err, pricing.ErrBadClockTime):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, lot.ErrNotFound),
		errors.Is(err, vehicle.ErrNotFound),
		errors.Is(err, allocation.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, allocation.ErrActiveAllocation),
		errors.Is(err, allocation.ErrLotFull),
		errors.Is(err, allocation.ErrConflict),
		errors.Is(err, allocation.ErrInvalidState),
		errors.Is(err, lot.ErrLotInUse),
		errors.Is(err, vehicle.ErrDuplicatePlate),
		errors.Is(err, vehicle.ErrInUse):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, pricing.ErrInvalidInterval),
		errors.Is(err, pricing.ErrUnsupportedMode):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
