// README: Lot tests: input validation without a DB, service round trip against PARKING_TEST_DSN.
package lot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parking/internal/testutil"
	"parking/internal/types"
)

func strPtr(s string) *string { return &s }

func TestInput_Validate(t *testing.T) {
	valid := Input{Name: "Central", PricePerHour: 5, NightStart: strPtr("22:00"), NightEnd: strPtr("06:00")}

	cases := []struct {
		name    string
		mutate  func(*Input)
		wantErr bool
	}{
		{"valid", func(*Input) {}, false},
		{"no night period", func(in *Input) { in.NightStart, in.NightEnd = nil, nil }, false},
		{"missing name", func(in *Input) { in.Name = "  " }, true},
		{"negative slots", func(in *Input) { in.TotalSlots = -1 }, true},
		{"negative hourly", func(in *Input) { in.PricePerHour = -0.01 }, true},
		{"negative truck price", func(in *Input) { in.TruckFixedPrice = -3 }, true},
		{"night start only", func(in *Input) { in.NightEnd = nil }, true},
		{"malformed night end", func(in *Input) { in.NightEnd = strPtr("6am") }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInput_ApplyNormalizesNightPeriod(t *testing.T) {
	var l ParkingLot
	Input{Name: " North ", NightStart: strPtr("7:00"), NightEnd: strPtr("9:30")}.apply(&l)
	assert.Equal(t, "North", l.Name)
	assert.Equal(t, "07:00", l.NightStart.String)
	assert.Equal(t, "09:30", l.NightEnd.String)
}

type stubGeocoder struct {
	point types.Point
	err   error
	calls int
}

func (g *stubGeocoder) Geocode(context.Context, string) (types.Point, error) {
	g.calls++
	return g.point, g.err
}

type stubCache struct{ invalidated []types.ID }

func (c *stubCache) Invalidate(_ context.Context, id types.ID) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

func TestService_CreateRejectsInvalidInput(t *testing.T) {
	s := NewService(nil, nil, nil, zap.NewNop())
	_, err := s.Create(context.Background(), Input{})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestService_Lifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	geo := &stubGeocoder{point: types.Point{Lat: -23.55, Lng: -46.63}}
	cache := &stubCache{}
	s := NewService(NewStore(db), geo, cache, zap.NewNop())
	ctx := context.Background()

	created, err := s.Create(ctx, Input{Name: "Paulista", Address: "Av. Paulista 1000", PricePerHour: 6, TotalSlots: 10})
	require.NoError(t, err)
	assert.Equal(t, -23.55, created.Location.Lat)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paulista", got.Name)
	assert.False(t, got.NightStart.Valid)

	updated, err := s.Update(ctx, created.ID, Input{
		Name: "Paulista", Address: "Av. Paulista 1000", PricePerHour: 7, TotalSlots: 10,
		NightStart: strPtr("22:00"), NightEnd: strPtr("06:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, updated.PricePerHour)
	assert.Equal(t, 1, geo.calls, "address unchanged, no second geocode")
	assert.Equal(t, []types.ID{created.ID}, cache.invalidated)

	lots, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lots, 1)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_CreateSurvivesGeocodeFailure(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewService(NewStore(db), &stubGeocoder{err: errors.New("quota")}, nil, zap.NewNop())

	l, err := s.Create(context.Background(), Input{Name: "Harbor", Address: "Pier 4"})
	require.NoError(t, err)
	assert.Equal(t, types.Point{}, l.Location)
}

func TestService_NearbyRejectsBadInput(t *testing.T) {
	s := NewService(nil, nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := s.Nearby(ctx, types.Point{Lat: 91, Lng: 0}, 1)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = s.Nearby(ctx, types.Point{Lat: 0, Lng: 0}, -1)
	assert.ErrorIs(t, err, ErrBadRequest)
}
