// README: Identifier, coordinate and vehicle-class value types shared across modules.
package types

import (
	"strings"

	"github.com/google/uuid"
)

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehicleClass selects the lot's fixed surcharge.
type VehicleClass string

const (
	VehicleCar   VehicleClass = "car"
	VehicleMoto  VehicleClass = "moto"
	VehicleTruck VehicleClass = "truck"
)

func ParseVehicleClass(s string) (VehicleClass, bool) {
	switch c := VehicleClass(strings.ToLower(strings.TrimSpace(s))); c {
	case VehicleCar, VehicleMoto, VehicleTruck:
		return c, true
	default:
		return "", false
	}
}
