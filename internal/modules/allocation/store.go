// README: Allocation store backed by PostgreSQL.
package allocation

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"parking/internal/modules/pricing"
	"parking/internal/types"
)

const selectAllocation = `
	SELECT a.id, a.lot_id, a.vehicle_id, v.class, a.mode, a.status, a.entry_at, a.exit_at, a.created_at
	FROM allocations a
	JOIN vehicles v ON v.id = a.vehicle_id`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *Allocation) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO allocations (id, lot_id, vehicle_id, mode, status, entry_at, exit_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(a.ID), string(a.LotID), string(a.VehicleID),
		a.Mode.String(), string(a.Status), a.EntryAt, a.ExitAt, a.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrActiveAllocation
	}
	return errors.Wrap(err, "insert allocation")
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Allocation, error) {
	a, err := scanAllocation(s.db.QueryRow(ctx, selectAllocation+` WHERE a.id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get allocation")
	}
	return a, nil
}

func (s *Store) List(ctx context.Context, f Filter) ([]*Allocation, error) {
	rows, err := s.db.Query(ctx, selectAllocation+`
		WHERE ($1 = '' OR a.lot_id = $1)
		  AND ($2 = '' OR a.status = $2)
		ORDER BY a.entry_at DESC, a.id`,
		string(f.LotID), string(f.Status),
	)
	if err != nil {
		return nil, errors.Wrap(err, "list allocations")
	}
	defer rows.Close()

	var out []*Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan allocation")
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "list allocations")
}

// Close moves an active allocation to closed. It reports false when the allocation
// was no longer active.
func (s *Store) Close(ctx context.Context, id types.ID, exitAt time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE allocations
		SET status = 'closed', exit_at = $2
		WHERE id = $1 AND status = 'active'`,
		string(id), exitAt,
	)
	if err != nil {
		return false, errors.Wrap(err, "close allocation")
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) HasActiveByVehicle(ctx context.Context, vehicleID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM allocations WHERE vehicle_id = $1 AND status = 'active'
		)`, string(vehicleID),
	).Scan(&exists)
	return exists, errors.Wrap(err, "check active allocation")
}

func (s *Store) CountActiveByLot(ctx context.Context, lotID types.ID) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM allocations WHERE lot_id = $1 AND status = 'active'`,
		string(lotID),
	).Scan(&n)
	return n, errors.Wrap(err, "count active allocations")
}

func scanAllocation(row pgx.Row) (*Allocation, error) {
	var a Allocation
	var mode string
	err := row.Scan(&a.ID, &a.LotID, &a.VehicleID, &a.VehicleClass, &mode, &a.Status, &a.EntryAt, &a.ExitAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if a.Mode, err = pricing.ParseBillingMode(mode); err != nil {
		return nil, err
	}
	return &a, nil
}
