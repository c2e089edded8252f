package google

import (
	"context"
	"errors"

	"google.golang.org/api/option"
	"google.golang.org/api/places/v1"
)

// ErrMissingAPIKey indicates a Maps Platform service was requested without a key.
var ErrMissingAPIKey = errors.New("google: API key is required")

// NewPlacesService creates a Places API (New) client authenticated with apiKey.
// Extra options are appended, so tests can point the client at a fake endpoint.
func NewPlacesService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*places.Service, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	return places.NewService(ctx, all...)
}
