// README: Stay-cost calculator: hourly (with night proration), daily and monthly formulas.
package pricing

import (
	"fmt"

	"parking/internal/types"
)

// ComputeCost prices a stay. It is pure: exitAt for an open stay is supplied by the caller.
// Only the final total is rounded.
func ComputeCost(stay StayInterval, mode BillingMode, schedule RateSchedule) (CostResult, error) {
	if err := stay.Validate(); err != nil {
		return CostResult{}, err
	}

	var b Breakdown
	switch mode {
	case ModeHour:
		b = hourly(stay, schedule)
	case ModeDay:
		b = daily(stay, schedule)
	case ModeMonth:
		b = monthly(stay, schedule)
	default:
		return CostResult{}, fmt.Errorf("%w: %d", ErrUnsupportedMode, mode)
	}

	b.FixedPrice = schedule.VehicleFixedPrice
	return CostResult{
		Mode:      mode,
		Amount:    types.RoundMoney(b.FixedPrice + b.Variable),
		Breakdown: b,
	}, nil
}

func hourly(stay StayInterval, schedule RateSchedule) Breakdown {
	total := stay.Duration()
	b := Breakdown{TotalHours: total.Hours()}

	if schedule.NightPeriod == nil {
		b.NormalHours = b.TotalHours
		b.Variable = b.TotalHours * schedule.PricePerHour
		return b
	}

	night := nightDuration(stay, *schedule.NightPeriod)
	b.NightHours = night.Hours()
	b.NormalHours = (total - night).Hours()
	b.Variable = b.NormalHours*schedule.PricePerHour + b.NightHours*schedule.NightPricePerHour
	return b
}

func daily(stay StayInterval, schedule RateSchedule) Breakdown {
	days := calendarDays(stay.EntryAt, stay.ExitAt) + 1
	return Breakdown{
		TotalHours:  stay.Duration().Hours(),
		NormalHours: stay.Duration().Hours(),
		Days:        days,
		Variable:    float64(days) * schedule.DailyRate,
	}
}

func monthly(stay StayInterval, schedule RateSchedule) Breakdown {
	months := calendarMonths(stay.EntryAt, stay.ExitAt) + 1
	return Breakdown{
		TotalHours:  stay.Duration().Hours(),
		NormalHours: stay.Duration().Hours(),
		Months:      months,
		Variable:    float64(months) * schedule.MonthlyRate,
	}
}
