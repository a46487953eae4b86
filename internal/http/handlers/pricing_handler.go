// README: Public cost estimate endpoint; prices a self-contained request.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking/internal/modules/pricing"
)

type Estimator interface {
	Estimate(ctx context.Context, req pricing.CostRequest) (pricing.CostResult, error)
}

type PricingHandler struct {
	pricing Estimator
}

func NewPricingHandler(svc Estimator) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) Estimate(c *gin.Context) {
	var req pricing.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.pricing.Estimate(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
