package maps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"parking/internal/types"
)

type fakeClient struct {
	got     *maps.GeocodingRequest
	results []maps.GeocodingResult
	err     error
}

func (f *fakeClient) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	f.got = r
	return f.results, f.err
}

func TestGeocoder_Geocode(t *testing.T) {
	fc := &fakeClient{results: []maps.GeocodingResult{
		{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: -23.55, Lng: -46.63}}},
		{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 1, Lng: 1}}},
	}}
	g := &Geocoder{client: fc, region: "br"}

	p, err := g.Geocode(context.Background(), "Av. Paulista, 1000")
	require.NoError(t, err)
	assert.Equal(t, types.Point{Lat: -23.55, Lng: -46.63}, p)
	assert.Equal(t, "Av. Paulista, 1000", fc.got.Address)
	assert.Equal(t, "br", fc.got.Region)
}

func TestGeocoder_Errors(t *testing.T) {
	g := &Geocoder{client: &fakeClient{}}
	_, err := g.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoResult)

	boom := errors.New("quota")
	g = &Geocoder{client: &fakeClient{err: boom}}
	_, err = g.Geocode(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
