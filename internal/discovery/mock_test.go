package discovery

import (
	"context"

	"github.com/ropnep/trustedtrades/pkg/places"
)

// mockPlacesClient implements places.Client for testing.
type mockPlacesClient struct {
	responses map[string]*places.TextSearchResponse
	errors    map[string]error
	calls     []string
}

func (m *mockPlacesClient) TextSearch(_ context.Context, query string, _ int) (*places.TextSearchResponse, error) {
	m.calls = append(m.calls, query)
	if err, ok := m.errors[query]; ok {
		return nil, err
	}
	if resp, ok := m.responses[query]; ok {
		return resp, nil
	}
	return &places.TextSearchResponse{}, nil
}
