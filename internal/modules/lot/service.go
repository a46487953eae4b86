// README: Parking lot service: validated CRUD, address geocoding, rate cache invalidation.
package lot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"parking/internal/types"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

// RateCache is invalidated whenever a lot's rates may have changed.
type RateCache interface {
	Invalidate(ctx context.Context, lotID types.ID) error
}

type Service struct {
	store *Store
	geo   Geocoder
	cache RateCache
	log   *zap.Logger
	now   func() time.Time
}

// NewService wires the lot service. geo and cache may be nil.
func NewService(store *Store, geo Geocoder, cache RateCache, log *zap.Logger) *Service {
	return &Service{store: store, geo: geo, cache: cache, log: log, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in Input) (*ParkingLot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	l := &ParkingLot{ID: types.NewID(), CreatedAt: now, UpdatedAt: now}
	in.apply(l)
	s.locate(ctx, l)

	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("parking lot created", zap.String("lot_id", string(l.ID)), zap.String("name", l.Name))
	return l, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*ParkingLot, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*ParkingLot, error) {
	return s.store.List(ctx)
}

// DefaultRadiusKm applies when Nearby is called without a radius.
const DefaultRadiusKm = 2.0

// Nearby lists geocoded lots within radiusKm of p, closest first.
func (s *Service) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]NearbyLot, error) {
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}
	if radiusKm < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative", ErrBadRequest)
	}
	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	lots, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return nearby(lots, p, radiusKm), nil
}

func (s *Service) Update(ctx context.Context, id types.ID, in Input) (*ParkingLot, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prevAddress := l.Address
	in.apply(l)
	l.UpdatedAt = s.now().UTC()
	if l.Address != prevAddress {
		l.Location = types.Point{}
		s.locate(ctx, l)
	}

	if err := s.store.Update(ctx, l); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info("parking lot deleted", zap.String("lot_id", string(id)))
	return nil
}

// locate fills the lot's coordinates. Geocoding is best effort.
func (s *Service) locate(ctx context.Context, l *ParkingLot) {
	if s.geo == nil || l.Address == "" {
		return
	}
	p, err := s.geo.Geocode(ctx, l.Address)
	if err != nil {
		s.log.Warn("geocode failed", zap.String("lot_id", string(l.ID)), zap.String("address", l.Address), zap.Error(err))
		return
	}
	l.Location = p
}

func (s *Service) invalidate(ctx context.Context, id types.ID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("rate cache invalidation failed", zap.String("lot_id", string(id)), zap.Error(err))
	}
}
