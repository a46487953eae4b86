// README: Rate schedule provider backed by PostgreSQL with a Redis read-through cache.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parking/internal/types"
)

const scheduleKeyPrefix = "pricing:lot:%s:schedule"

// lotRates is the cached row: every class price, so one entry serves all vehicle classes.
type lotRates struct {
	PricePerHour      float64 `json:"price_per_hour"`
	NightPricePerHour float64 `json:"night_price_per_hour"`
	DailyRate         float64 `json:"daily_rate"`
	MonthlyRate       float64 `json:"monthly_rate"`
	CarFixedPrice     float64 `json:"car_fixed_price"`
	MotoFixedPrice    float64 `json:"moto_fixed_price"`
	TruckFixedPrice   float64 `json:"truck_fixed_price"`
	NightStart        *string `json:"night_start,omitempty"`
	NightEnd          *string `json:"night_end,omitempty"`
}

func (r lotRates) schedule(class types.VehicleClass) (RateSchedule, error) {
	s := RateSchedule{
		PricePerHour:      r.PricePerHour,
		NightPricePerHour: r.NightPricePerHour,
		DailyRate:         r.DailyRate,
		MonthlyRate:       r.MonthlyRate,
	}
	switch class {
	case types.VehicleCar:
		s.VehicleFixedPrice = r.CarFixedPrice
	case types.VehicleMoto:
		s.VehicleFixedPrice = r.MotoFixedPrice
	case types.VehicleTruck:
		s.VehicleFixedPrice = r.TruckFixedPrice
	default:
		return RateSchedule{}, fmt.Errorf("unknown vehicle class %q", class)
	}
	if r.NightStart != nil && r.NightEnd != nil {
		p, err := ParseNightPeriod(*r.NightStart, *r.NightEnd)
		if err != nil {
			return RateSchedule{}, err
		}
		s.NightPeriod = &p
	}
	return s, nil
}

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewStore(db *pgxpool.Pool, redis *redis.Client, ttl time.Duration, log *zap.Logger) *Store {
	return &Store{db: db, redis: redis, ttl: ttl, log: log}
}

func (s *Store) GetRateSchedule(ctx context.Context, lotID types.ID, class types.VehicleClass) (RateSchedule, error) {
	rates, ok := s.cached(ctx, lotID)
	if !ok {
		var err error
		rates, err = s.load(ctx, lotID)
		if err != nil {
			return RateSchedule{}, err
		}
		s.store(ctx, lotID, rates)
	}
	return rates.schedule(class)
}

// Invalidate drops the cached schedule; called after every lot update or delete.
func (s *Store) Invalidate(ctx context.Context, lotID types.ID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, fmt.Sprintf(scheduleKeyPrefix, lotID)).Err()
}

func (s *Store) load(ctx context.Context, lotID types.ID) (lotRates, error) {
	var r lotRates
	err := s.db.QueryRow(ctx, `
		SELECT price_per_hour, night_price_per_hour, daily_rate, monthly_rate,
		       car_fixed_price, moto_fixed_price, truck_fixed_price,
		       night_start, night_end
		FROM parking_lots
		WHERE id = $1`, string(lotID),
	).Scan(
		&r.PricePerHour, &r.NightPricePerHour, &r.DailyRate, &r.MonthlyRate,
		&r.CarFixedPrice, &r.MotoFixedPrice, &r.TruckFixedPrice,
		&r.NightStart, &r.NightEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return lotRates{}, ErrLotNotFound
	}
	if err != nil {
		return lotRates{}, errors.Wrapf(err, "load rate schedule for lot %s", lotID)
	}
	return r, nil
}

func (s *Store) cached(ctx context.Context, lotID types.ID) (lotRates, bool) {
	if s.redis == nil {
		return lotRates{}, false
	}
	raw, err := s.redis.Get(ctx, fmt.Sprintf(scheduleKeyPrefix, lotID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("rate cache read failed", zap.String("lot_id", string(lotID)), zap.Error(err))
		}
		return lotRates{}, false
	}
	var r lotRates
	if err := json.Unmarshal(raw, &r); err != nil {
		s.log.Warn("rate cache entry corrupt", zap.String("lot_id", string(lotID)), zap.Error(err))
		return lotRates{}, false
	}
	return r, true
}

func (s *Store) store(ctx context.Context, lotID types.ID, r lotRates) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, fmt.Sprintf(scheduleKeyPrefix, lotID), raw, s.ttl).Err(); err != nil {
		s.log.Warn("rate cache write failed", zap.String("lot_id", string(lotID)), zap.Error(err))
	}
}
