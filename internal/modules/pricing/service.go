// README: Pricing service resolves a lot's rate schedule and prices stays against it.
package pricing

import (
	"context"

	"go.uber.org/zap"

	"parking/internal/types"
)

// RateSource resolves a lot's schedule with the fixed price for one vehicle class.
type RateSource interface {
	GetRateSchedule(ctx context.Context, lotID types.ID, class types.VehicleClass) (RateSchedule, error)
}

type Service struct {
	rates RateSource
	log   *zap.Logger
}

func NewService(rates RateSource, log *zap.Logger) *Service {
	return &Service{rates: rates, log: log}
}

type QuoteRequest struct {
	LotID        types.ID
	VehicleClass types.VehicleClass
	Mode         BillingMode
	Stay         StayInterval
}

// Quote prices a stay in a persisted lot.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (CostResult, error) {
	if err := req.Stay.Validate(); err != nil {
		return CostResult{}, err
	}
	schedule, err := s.rates.GetRateSchedule(ctx, req.LotID, req.VehicleClass)
	if err != nil {
		return CostResult{}, err
	}
	res, err := ComputeCost(req.Stay, req.Mode, schedule)
	if err != nil {
		return CostResult{}, err
	}
	s.log.Debug("stay priced",
		zap.String("lot_id", string(req.LotID)),
		zap.Stringer("mode", req.Mode),
		zap.String("amount", res.AmountString()),
	)
	return res, nil
}

// Estimate prices a self-contained request without touching storage.
func (s *Service) Estimate(_ context.Context, req CostRequest) (CostResult, error) {
	mode, err := ParseBillingMode(req.Mode)
	if err != nil {
		return CostResult{}, err
	}
	schedule, err := req.Schedule()
	if err != nil {
		return CostResult{}, err
	}
	return ComputeCost(req.Interval(), mode, schedule)
}
