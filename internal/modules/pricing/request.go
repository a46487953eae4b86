// README: Self-contained cost request (entry/exit, mode, rates, optional night period).
package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp accepts RFC 3339 as well as ISO-8601 local forms without an offset
// ("2024-01-01T10:00", "2024-01-01T10:00:00"). Offset-less values are read in UTC.
type Timestamp struct {
	time.Time
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	if t, err := time.Parse("2006-01-02T15:04Z07:00", s); err == nil {
		return Timestamp{t}, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type NightPeriodRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CostRequest carries everything the calculator needs, as it arrives from JSON.
type CostRequest struct {
	EntryAt           Timestamp           `json:"entryAt"`
	ExitAt            Timestamp           `json:"exitAt"`
	Mode              string              `json:"mode"`
	PricePerHour      float64             `json:"pricePerHour"`
	NightPricePerHour float64             `json:"nightPricePerHour"`
	DailyRate         float64             `json:"dailyRate"`
	MonthlyRate       float64             `json:"monthlyRate"`
	VehicleFixedPrice float64             `json:"vehicleFixedPrice"`
	NightPeriod       *NightPeriodRequest `json:"nightPeriod"`
}

// Schedule validates the rate fields and builds the schedule snapshot.
func (r CostRequest) Schedule() (RateSchedule, error) {
	for name, v := range map[string]float64{
		"pricePerHour":      r.PricePerHour,
		"nightPricePerHour": r.NightPricePerHour,
		"dailyRate":         r.DailyRate,
		"monthlyRate":       r.MonthlyRate,
		"vehicleFixedPrice": r.VehicleFixedPrice,
	} {
		if v < 0 {
			return RateSchedule{}, fmt.Errorf("%w: %s", ErrInvalidRate, name)
		}
	}
	s := RateSchedule{
		PricePerHour:      r.PricePerHour,
		NightPricePerHour: r.NightPricePerHour,
		DailyRate:         r.DailyRate,
		MonthlyRate:       r.MonthlyRate,
		VehicleFixedPrice: r.VehicleFixedPrice,
	}
	if r.NightPeriod != nil {
		p, err := ParseNightPeriod(r.NightPeriod.Start, r.NightPeriod.End)
		if err != nil {
			return RateSchedule{}, err
		}
		s.NightPeriod = &p
	}
	return s, nil
}

func (r CostRequest) Interval() StayInterval {
	return StayInterval{EntryAt: r.EntryAt.Time, ExitAt: r.ExitAt.Time}
}
