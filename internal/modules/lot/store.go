// README: Parking lot store backed by PostgreSQL.
package lot

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"parking/internal/types"
)

const lotColumns = `id, name, address, lat, lng, total_slots,
	price_per_hour, night_price_per_hour, daily_rate, monthly_rate,
	car_fixed_price, moto_fixed_price, truck_fixed_price,
	night_start, night_end, created_at, updated_at`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, l *ParkingLot) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO parking_lots (`+lotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		string(l.ID), l.Name, l.Address, l.Location.Lat, l.Location.Lng, l.TotalSlots,
		l.PricePerHour, l.NightPricePerHour, l.DailyRate, l.MonthlyRate,
		l.CarFixedPrice, l.MotoFixedPrice, l.TruckFixedPrice,
		l.NightStart, l.NightEnd, l.CreatedAt, l.UpdatedAt,
	)
	return errors.Wrap(err, "insert parking lot")
}

func (s *Store) Get(ctx context.Context, id types.ID) (*ParkingLot, error) {
	row := s.db.QueryRow(ctx, `SELECT `+lotColumns+` FROM parking_lots WHERE id = $1`, string(id))
	l, err := scanLot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get parking lot")
	}
	return l, nil
}

func (s *Store) List(ctx context.Context) ([]*ParkingLot, error) {
	rows, err := s.db.Query(ctx, `SELECT `+lotColumns+` FROM parking_lots ORDER BY name, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list parking lots")
	}
	defer rows.Close()

	var out []*ParkingLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan parking lot")
		}
		out = append(out, l)
	}
	return out, errors.Wrap(rows.Err(), "list parking lots")
}

func (s *Store) Update(ctx context.Context, l *ParkingLot) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE parking_lots
		SET name = $2, address = $3, lat = $4, lng = $5, total_slots = $6,
		    price_per_hour = $7, night_price_per_hour = $8, daily_rate = $9, monthly_rate = $10,
		    car_fixed_price = $11, moto_fixed_price = $12, truck_fixed_price = $13,
		    night_start = $14, night_end = $15, updated_at = $16
		WHERE id = $1`,
		string(l.ID), l.Name, l.Address, l.Location.Lat, l.Location.Lng, l.TotalSlots,
		l.PricePerHour, l.NightPricePerHour, l.DailyRate, l.MonthlyRate,
		l.CarFixedPrice, l.MotoFixedPrice, l.TruckFixedPrice,
		l.NightStart, l.NightEnd, l.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "update parking lot")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lot with no active allocations. Closed allocations go with it.
func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin delete parking lot")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var active bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM allocations WHERE lot_id = $1 AND status = 'active')`,
		string(id),
	).Scan(&active)
	if err != nil {
		return errors.Wrap(err, "check active allocations")
	}
	if active {
		return ErrLotInUse
	}
	if _, err := tx.Exec(ctx, `DELETE FROM allocations WHERE lot_id = $1`, string(id)); err != nil {
		return errors.Wrap(err, "delete closed allocations")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM parking_lots WHERE id = $1`, string(id))
	if err != nil {
		return errors.Wrap(err, "delete parking lot")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return errors.Wrap(tx.Commit(ctx), "commit delete parking lot")
}

func scanLot(row pgx.Row) (*ParkingLot, error) {
	var l ParkingLot
	err := row.Scan(
		&l.ID, &l.Name, &l.Address, &l.Location.Lat, &l.Location.Lng, &l.TotalSlots,
		&l.PricePerHour, &l.NightPricePerHour, &l.DailyRate, &l.MonthlyRate,
		&l.CarFixedPrice, &l.MotoFixedPrice, &l.TruckFixedPrice,
		&l.NightStart, &l.NightEnd, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
