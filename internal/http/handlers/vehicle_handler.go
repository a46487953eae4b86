// README: Vehicle registration handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking/internal/modules/vehicle"
	"parking/internal/types"
)

type VehicleService interface {
	Register(ctx context.Context, cmd vehicle.RegisterCommand) (*vehicle.Vehicle, error)
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
	List(ctx context.Context, clientID string) ([]*vehicle.Vehicle, error)
	Delete(ctx context.Context, id types.ID) error
}

type VehicleHandler struct {
	vehicles VehicleService
}

func NewVehicleHandler(svc VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: svc}
}

type registerVehicleReq struct {
	Plate    string `json:"plate"`
	Class    string `json:"class"`
	ClientID string `json:"client_id"`
	Model    string `json:"model"`
}

func (h *VehicleHandler) Register(c *gin.Context) {
	var req registerVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	v, err := h.vehicles.Register(c.Request.Context(), vehicle.RegisterCommand{
		Plate:    req.Plate,
		Class:    req.Class,
		ClientID: req.ClientID,
		Model:    req.Model,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.vehicles.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *VehicleHandler) List(c *gin.Context) {
	vs, err := h.vehicles.List(c.Request.Context(), c.Query("client_id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if vs == nil {
		vs = []*vehicle.Vehicle{}
	}
	writeJSON(c, http.StatusOK, gin.H{"vehicles": vs})
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicles.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
