// README: Allocation service: park, close and price stays; open stays are priced up to now.
package allocation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"parking/internal/modules/lot"
	"parking/internal/modules/pricing"
	"parking/internal/modules/vehicle"
	"parking/internal/types"
)

//go:generate mockgen -source=service.go -destination=mock_deps_test.go -package=allocation

var (
	ErrNotFound         = errors.New("allocation not found")
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidState     = errors.New("invalid state transition")
	ErrConflict         = errors.New("allocation state conflict")
	ErrActiveAllocation = errors.New("vehicle already has an active allocation")
	ErrLotFull          = errors.New("parking lot is full")
)

type Repository interface {
	Create(ctx context.Context, a *Allocation) error
	Get(ctx context.Context, id types.ID) (*Allocation, error)
	List(ctx context.Context, f Filter) ([]*Allocation, error)
	Close(ctx context.Context, id types.ID, exitAt time.Time) (bool, error)
	HasActiveByVehicle(ctx context.Context, vehicleID types.ID) (bool, error)
	CountActiveByLot(ctx context.Context, lotID types.ID) (int, error)
}

type LotReader interface {
	Get(ctx context.Context, id types.ID) (*lot.ParkingLot, error)
}

type VehicleReader interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (pricing.CostResult, error)
}

type Service struct {
	repo     Repository
	lots     LotReader
	vehicles VehicleReader
	quoter   Quoter
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, lots LotReader, vehicles VehicleReader, quoter Quoter, log *zap.Logger) *Service {
	return &Service{repo: repo, lots: lots, vehicles: vehicles, quoter: quoter, log: log, now: time.Now}
}

// WithClock replaces the clock used for default entry/exit times and live costs.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type AllocateCommand struct {
	LotID     types.ID
	VehicleID types.ID
	Mode      pricing.BillingMode
	EntryAt   *time.Time
}

type CloseCommand struct {
	AllocationID types.ID
	ExitAt       *time.Time
}

func (s *Service) Allocate(ctx context.Context, cmd AllocateCommand) (*Allocation, error) {
	if cmd.LotID == "" || cmd.VehicleID == "" {
		return nil, ErrBadRequest
	}
	if !cmd.Mode.Valid() {
		return nil, pricing.ErrUnsupportedMode
	}
	entry := s.now()
	if cmd.EntryAt != nil {
		entry = *cmd.EntryAt
	}

	l, err := s.lots.Get(ctx, cmd.LotID)
	if err != nil {
		return nil, err
	}
	v, err := s.vehicles.Get(ctx, cmd.VehicleID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.HasActiveByVehicle(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveAllocation
	}
	if l.TotalSlots > 0 {
		n, err := s.repo.CountActiveByLot(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		if n >= l.TotalSlots {
			return nil, ErrLotFull
		}
	}

	a := &Allocation{
		ID:           types.NewID(),
		LotID:        l.ID,
		VehicleID:    v.ID,
		VehicleClass: v.Class,
		Mode:         cmd.Mode,
		Status:       StatusActive,
		EntryAt:      entry,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("allocation opened",
		zap.String("allocation_id", string(a.ID)),
		zap.String("lot_id", string(a.LotID)),
		zap.Stringer("mode", a.Mode),
	)
	return a, nil
}

// Close ends an active allocation and returns its final cost.
func (s *Service) Close(ctx context.Context, cmd CloseCommand) (CostView, error) {
	a, err := s.repo.Get(ctx, cmd.AllocationID)
	if err != nil {
		return CostView{}, err
	}
	if !CanTransition(a.Status, StatusClosed) {
		return CostView{}, ErrInvalidState
	}
	exit := s.now()
	if cmd.ExitAt != nil {
		exit = *cmd.ExitAt
	}
	if !exit.After(a.EntryAt) {
		return CostView{}, pricing.ErrInvalidInterval
	}

	ok, err := s.repo.Close(ctx, a.ID, exit)
	if err != nil {
		return CostView{}, err
	}
	if !ok {
		return CostView{}, ErrConflict
	}
	a.Status = StatusClosed
	a.ExitAt = null.TimeFrom(exit)

	view, err := s.price(ctx, a, exit)
	if err != nil {
		return CostView{}, err
	}
	s.log.Info("allocation closed",
		zap.String("allocation_id", string(a.ID)),
		zap.String("amount", view.Cost.AmountString()),
	)
	return view, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Allocation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Allocation, error) {
	return s.repo.List(ctx, f)
}

// Cost prices an allocation. Active allocations are priced up to the current clock,
// so repeated reads return a growing running total.
func (s *Service) Cost(ctx context.Context, id types.ID) (CostView, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return CostView{}, err
	}
	return s.price(ctx, a, s.now())
}

func (s *Service) price(ctx context.Context, a *Allocation, now time.Time) (CostView, error) {
	stay := a.Stay(now)
	cost, err := s.quoter.Quote(ctx, pricing.QuoteRequest{
		LotID:        a.LotID,
		VehicleClass: a.VehicleClass,
		Mode:         a.Mode,
		Stay:         stay,
	})
	if err != nil {
		return CostView{}, err
	}
	return CostView{
		AllocationID: a.ID,
		Status:       a.Status,
		Live:         !a.ExitAt.Valid,
		EntryAt:      a.EntryAt,
		AsOf:         stay.ExitAt,
		Cost:         cost,
	}, nil
}
