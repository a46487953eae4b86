// README: Parking lot aggregate with its rate columns and optional night period.
package lot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"

	"parking/internal/modules/pricing"
	"parking/internal/types"
)

var (
	ErrNotFound   = pricing.ErrLotNotFound
	ErrBadRequest = errors.New("bad request")
	ErrLotInUse   = errors.New("parking lot has active allocations")
)

type ParkingLot struct {
	ID                types.ID    `json:"id"`
	Name              string      `json:"name"`
	Address           string      `json:"address"`
	Location          types.Point `json:"location"`
	TotalSlots        int         `json:"total_slots"`
	PricePerHour      float64     `json:"price_per_hour"`
	NightPricePerHour float64     `json:"night_price_per_hour"`
	DailyRate         float64     `json:"daily_rate"`
	MonthlyRate       float64     `json:"monthly_rate"`
	CarFixedPrice     float64     `json:"car_fixed_price"`
	MotoFixedPrice    float64     `json:"moto_fixed_price"`
	TruckFixedPrice   float64     `json:"truck_fixed_price"`
	NightStart        null.String `json:"night_start"`
	NightEnd          null.String `json:"night_end"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// NearbyLot is a lot annotated with its distance from a search point.
type NearbyLot struct {
	*ParkingLot
	DistanceKm float64 `json:"distance_km"`
}

// Input is the writable part of a lot, shared by create and update.
type Input struct {
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	TotalSlots        int     `json:"total_slots"`
	PricePerHour      float64 `json:"price_per_hour"`
	NightPricePerHour float64 `json:"night_price_per_hour"`
	DailyRate         float64 `json:"daily_rate"`
	MonthlyRate       float64 `json:"monthly_rate"`
	CarFixedPrice     float64 `json:"car_fixed_price"`
	MotoFixedPrice    float64 `json:"moto_fixed_price"`
	TruckFixedPrice   float64 `json:"truck_fixed_price"`
	NightStart        *string `json:"night_start"`
	NightEnd          *string `json:"night_end"`
}

// Validate enforces what the calculator assumes: non-negative rates and a well-formed night period.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if in.TotalSlots < 0 {
		return fmt.Errorf("%w: total_slots must be non-negative", ErrBadRequest)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"price_per_hour", in.PricePerHour},
		{"night_price_per_hour", in.NightPricePerHour},
		{"daily_rate", in.DailyRate},
		{"monthly_rate", in.MonthlyRate},
		{"car_fixed_price", in.CarFixedPrice},
		{"moto_fixed_price", in.MotoFixedPrice},
		{"truck_fixed_price", in.TruckFixedPrice},
	}
	for _, r := range rates {
		if r.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrBadRequest, r.name)
		}
	}
	if (in.NightStart == nil) != (in.NightEnd == nil) {
		return fmt.Errorf("%w: night_start and night_end go together", ErrBadRequest)
	}
	if in.NightStart != nil {
		if _, err := pricing.ParseNightPeriod(*in.NightStart, *in.NightEnd); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	return nil
}

func (in Input) apply(l *ParkingLot) {
	l.Name = strings.TrimSpace(in.Name)
	l.Address = strings.TrimSpace(in.Address)
	l.TotalSlots = in.TotalSlots
	l.PricePerHour = in.PricePerHour
	l.NightPricePerHour = in.NightPricePerHour
	l.DailyRate = in.DailyRate
	l.MonthlyRate = in.MonthlyRate
	l.CarFixedPrice = in.CarFixedPrice
	l.MotoFixedPrice = in.MotoFixedPrice
	l.TruckFixedPrice = in.TruckFixedPrice
	l.NightStart = null.StringFromPtr(normalizeClock(in.NightStart))
	l.NightEnd = null.StringFromPtr(normalizeClock(in.NightEnd))
}

// normalizeClock stores "7:00" as "07:00". Input is validated first.
func normalizeClock(s *string) *string {
	if s == nil {
		return nil
	}
	c, err := pricing.ParseClockTime(*s)
	if err != nil {
		return s
	}
	v := c.String()
	return &v
}
