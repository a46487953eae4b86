// README: Google Maps geocoding for parking lot addresses.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"parking/internal/types"
)

var ErrNoResult = errors.New("address not found")

type geocodeClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Geocoder resolves a street address to coordinates.
type Geocoder struct {
	client geocodeClient
	region string
}

// NewGeocoder creates a Geocoder with the given API key. region biases results (ccTLD, e.g. "br").
func NewGeocoder(apiKey, region string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, region: region}, nil
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, ErrNoResult
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
