// README: Vehicle service: registration with plate normalization and class checks.
package vehicle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"parking/internal/types"
)

type Service struct {
	store *Store
	log   *zap.Logger
}

func NewService(store *Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Vehicle, error) {
	plate := NormalizePlate(cmd.Plate)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrBadRequest)
	}
	class, ok := types.ParseVehicleClass(cmd.Class)
	if !ok {
		return nil, fmt.Errorf("%w: unknown vehicle class %q", ErrBadRequest, cmd.Class)
	}
	v := &Vehicle{
		ID:        types.NewID(),
		Plate:     plate,
		Class:     class,
		ClientID:  strings.TrimSpace(cmd.ClientID),
		Model:     strings.TrimSpace(cmd.Model),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	s.log.Info("vehicle registered", zap.String("vehicle_id", string(v.ID)), zap.String("class", string(class)))
	return v, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, clientID string) ([]*Vehicle, error) {
	return s.store.List(ctx, strings.TrimSpace(clientID))
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}
