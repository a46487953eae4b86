// README: Stay-cost inputs and outputs: billing modes, rate schedules, stay intervals.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInterval = errors.New("exit must be after entry")
	ErrUnsupportedMode = errors.New("unsupported billing mode")
	ErrBadClockTime    = errors.New("bad clock time")
	ErrInvalidRate     = errors.New("rates must be non-negative")
	ErrLotNotFound     = errors.New("parking lot not found")
)

// BillingMode selects the formula applied to a stay. The zero value is not a valid mode.
type BillingMode uint8

const (
	ModeUnknown BillingMode = iota
	ModeHour
	ModeDay
	ModeMonth
)

// ParseBillingMode is the only way mode strings from outside enter the calculator.
func ParseBillingMode(s string) (BillingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour":
		return ModeHour, nil
	case "day":
		return ModeDay, nil
	case "month":
		return ModeMonth, nil
	default:
		return ModeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

func (m BillingMode) String() string {
	switch m {
	case ModeHour:
		return "hour"
	case ModeDay:
		return "day"
	case ModeMonth:
		return "month"
	default:
		return "unknown"
	}
}

func (m BillingMode) Valid() bool {
	return m == ModeHour || m == ModeDay || m == ModeMonth
}

// MarshalText writes "unknown" for invalid modes so results stay serializable.
// UnmarshalText still rejects it.
func (m BillingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BillingMode) UnmarshalText(b []byte) error {
	parsed, err := ParseBillingMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ClockTime is a wall-clock time of day, minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (00:00..23:59).
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClockTime, s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return ClockTime{}, fmt.Errorf("%w: out of range %q", ErrBadClockTime, s)
	}
	return ClockTime{Hour: hh, Minute: mm}, nil
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NightPeriod is a recurring daily window. End before Start means it crosses midnight.
type NightPeriod struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

func ParseNightPeriod(start, end string) (NightPeriod, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return NightPeriod{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return NightPeriod{}, err
	}
	return NightPeriod{Start: s, End: e}, nil
}

func (p NightPeriod) CrossesMidnight() bool {
	return p.End.Minutes() < p.Start.Minutes()
}

// RateSchedule is a point-in-time snapshot of a lot's prices, with the fixed price
// already resolved for the vehicle class.
type RateSchedule struct {
	PricePerHour      float64      `json:"price_per_hour"`
	NightPricePerHour float64      `json:"night_price_per_hour"`
	DailyRate         float64      `json:"daily_rate"`
	MonthlyRate       float64      `json:"monthly_rate"`
	VehicleFixedPrice float64      `json:"vehicle_fixed_price"`
	NightPeriod       *NightPeriod `json:"night_period,omitempty"`
}

type StayInterval struct {
	EntryAt time.Time
	ExitAt  time.Time
}

func (i StayInterval) Validate() error {
	if !i.ExitAt.After(i.EntryAt) {
		return ErrInvalidInterval
	}
	return nil
}

func (i StayInterval) Duration() time.Duration {
	return i.ExitAt.Sub(i.EntryAt)
}

// Breakdown holds the unrounded quantities behind a cost.
type Breakdown struct {
	TotalHours  float64 `json:"total_hours"`
	NightHours  float64 `json:"night_hours"`
	NormalHours float64 `json:"normal_hours"`
	Days        int     `json:"days,omitempty"`
	Months      int     `json:"months,omitempty"`
	FixedPrice  float64 `json:"fixed_price"`
	Variable    float64 `json:"variable"`
}

type CostResult struct {
	Mode      BillingMode     `json:"mode"`
	Amount    decimal.Decimal `json:"amount"`
	Breakdown Breakdown       `json:"breakdown"`
}

// AmountString renders the amount with exactly two fraction digits.
func (r CostResult) AmountString() string {
	return r.Amount.StringFixed(2)
}

func (r CostResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode      BillingMode `json:"mode"`
		Amount    json.Number `json:"amount"`
		Breakdown Breakdown   `json:"breakdown"`
	}{r.Mode, json.Number(r.AmountString()), r.Breakdown})
}
