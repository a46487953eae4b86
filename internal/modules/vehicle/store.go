// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"parking/internal/types"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, v *Vehicle) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicles (id, plate, class, client_id, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(v.ID), v.Plate, string(v.Class), v.ClientID, v.Model, v.CreatedAt,
	)
	if isPgCode(err, uniqueViolation) {
		return ErrDuplicatePlate
	}
	return errors.Wrap(err, "insert vehicle")
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	var v Vehicle
	err := s.db.QueryRow(ctx, `
		SELECT id, plate, class, client_id, model, created_at
		FROM vehicles WHERE id = $1`, string(id),
	).Scan(&v.ID, &v.Plate, &v.Class, &v.ClientID, &v.Model, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get vehicle")
	}
	return &v, nil
}

// List returns every vehicle, or only the client's when clientID is set.
func (s *Store) List(ctx context.Context, clientID string) ([]*Vehicle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, plate, class, client_id, model, created_at
		FROM vehicles
		WHERE $1 = '' OR client_id = $1
		ORDER BY plate`, clientID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list vehicles")
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Class, &v.ClientID, &v.Model, &v.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan vehicle")
		}
		out = append(out, &v)
	}
	return out, errors.Wrap(rows.Err(), "list vehicles")
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, string(id))
	if isPgCode(err, foreignKeyViolation) {
		return ErrInUse
	}
	if err != nil {
		return errors.Wrap(err, "delete vehicle")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
