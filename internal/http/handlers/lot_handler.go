// README: Parking lot CRUD handlers.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking/internal/modules/lot"
	"parking/internal/types"
)

type LotService interface {
	Create(ctx context.Context, in lot.Input) (*lot.ParkingLot, error)
	Get(ctx context.Context, id types.ID) (*lot.ParkingLot, error)
	List(ctx context.Context) ([]*lot.ParkingLot, error)
	Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]lot.NearbyLot, error)
	Update(ctx context.Context, id types.ID, in lot.Input) (*lot.ParkingLot, error)
	Delete(ctx context.Context, id types.ID) error
}

type LotHandler struct {
	lots LotService
}

func NewLotHandler(svc LotService) *LotHandler {
	return &LotHandler{lots: svc}
}

func (h *LotHandler) Create(c *gin.Context) {
	var in lot.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l, err := h.lots.Create(c.Request.Context(), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, l)
}

func (h *LotHandler) Get(c *gin.Context) {
	l, err := h.lots.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}

func (h *LotHandler) List(c *gin.Context) {
	lots, err := h.lots.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if lots == nil {
		lots = []*lot.ParkingLot{}
	}
	writeJSON(c, http.StatusOK, gin.H{"lots": lots})
}

func (h *LotHandler) Update(c *gin.Context) {
	var in lot.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l, err := h.lots.Update(c.Request.Context(), types.ID(c.Param("id")), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}

func (h *LotHandler) Delete(c *gin.Context) {
	if err := h.lots.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Nearby expects lat and lng query parameters; radius_km is optional.
func (h *LotHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	var radius float64
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = r
	}
	lots, err := h.lots.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"lots": lots})
}
