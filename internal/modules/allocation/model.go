// README: Allocation aggregate (a vehicle parked in a lot) and its status flow.
package allocation

import (
	"time"

	"gopkg.in/guregu/null.v4"

	"parking/internal/modules/pricing"
	"parking/internal/types"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusClosed:
		return Status(s), true
	default:
		return "", false
	}
}

type Allocation struct {
	ID           types.ID            `json:"id"`
	LotID        types.ID            `json:"lot_id"`
	VehicleID    types.ID            `json:"vehicle_id"`
	VehicleClass types.VehicleClass  `json:"vehicle_class"`
	Mode         pricing.BillingMode `json:"mode"`
	Status       Status              `json:"status"`
	EntryAt      time.Time           `json:"entry_at"`
	ExitAt       null.Time           `json:"exit_at"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Stay is the billed interval; an open allocation runs until now.
func (a *Allocation) Stay(now time.Time) pricing.StayInterval {
	exit := now
	if a.ExitAt.Valid {
		exit = a.ExitAt.Time
	}
	return pricing.StayInterval{EntryAt: a.EntryAt, ExitAt: exit}
}

type Filter struct {
	LotID  types.ID
	Status Status
}

// CostView is the cost of an allocation as of AsOf. Live costs change on every read.
type CostView struct {
	AllocationID types.ID           `json:"allocation_id"`
	Status       Status             `json:"status"`
	Live         bool               `json:"live"`
	EntryAt      time.Time          `json:"entry_at"`
	AsOf         time.Time          `json:"as_of"`
	Cost         pricing.CostResult `json:"cost"`
}

// AllowedTransitions is the allocation status flow.
var AllowedTransitions = map[Status][]Status{
	StatusActive: {StatusClosed},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
