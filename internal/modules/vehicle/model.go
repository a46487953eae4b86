// README: Vehicle registration; the class selects the lot's fixed surcharge.
package vehicle

import (
	"errors"
	"strings"
	"time"

	"parking/internal/types"
)

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrBadRequest     = errors.New("bad request")
	ErrDuplicatePlate = errors.New("plate already registered")
	ErrInUse          = errors.New("vehicle has allocations")
)

type Vehicle struct {
	ID        types.ID           `json:"id"`
	Plate     string             `json:"plate"`
	Class     types.VehicleClass `json:"class"`
	ClientID  string             `json:"client_id"`
	Model     string             `json:"model"`
	CreatedAt time.Time          `json:"created_at"`
}

type RegisterCommand struct {
	Plate    string
	Class    string
	ClientID string
	Model    string
}

// NormalizePlate upper-cases and drops spaces and dashes: "abc-1d23" -> "ABC1D23".
func NormalizePlate(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}
