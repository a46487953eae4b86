// README: Allocation handlers: park, close, list and live cost.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parking/internal/modules/allocation"
	"parking/internal/modules/pricing"
	"parking/internal/types"
)

type AllocationService interface {
	Allocate(ctx context.Context, cmd allocation.AllocateCommand) (*allocation.Allocation, error)
	Close(ctx context.Context, cmd allocation.CloseCommand) (allocation.CostView, error)
	Get(ctx context.Context, id types.ID) (*allocation.Allocation, error)
	List(ctx context.Context, f allocation.Filter) ([]*allocation.Allocation, error)
	Cost(ctx context.Context, id types.ID) (allocation.CostView, error)
}

type AllocationHandler struct {
	allocations AllocationService
}

func NewAllocationHandler(svc AllocationService) *AllocationHandler {
	return &AllocationHandler{allocations: svc}
}

type allocateReq struct {
	LotID     string     `json:"lot_id"`
	VehicleID string     `json:"vehicle_id"`
	Mode      string     `json:"mode"`
	EntryAt   *time.Time `json:"entry_at"`
}

type closeReq struct {
	ExitAt *time.Time `json:"exit_at"`
}

func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req allocateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.LotID == "" || req.VehicleID == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	mode, err := pricing.ParseBillingMode(req.Mode)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	a, err := h.allocations.Allocate(c.Request.Context(), allocation.AllocateCommand{
		LotID:     types.ID(req.LotID),
		VehicleID: types.ID(req.VehicleID),
		Mode:      mode,
		EntryAt:   req.EntryAt,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, a)
}

// Close accepts an empty body; exit time then defaults to now.
func (h *AllocationHandler) Close(c *gin.Context) {
	var req closeReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	view, err := h.allocations.Close(c.Request.Context(), allocation.CloseCommand{
		AllocationID: types.ID(c.Param("id")),
		ExitAt:       req.ExitAt,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

func (h *AllocationHandler) Get(c *gin.Context) {
	a, err := h.allocations.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, a)
}

func (h *AllocationHandler) List(c *gin.Context) {
	f := allocation.Filter{LotID: types.ID(c.Query("lot_id"))}
	if s := c.Query("status"); s != "" {
		status, ok := allocation.ParseStatus(s)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown status")
			return
		}
		f.Status = status
	}
	as, err := h.allocations.List(c.Request.Context(), f)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if as == nil {
		as = []*allocation.Allocation{}
	}
	writeJSON(c, http.StatusOK, gin.H{"allocations": as})
}

func (h *AllocationHandler) Cost(c *gin.Context) {
	view, err := h.allocations.Cost(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}
