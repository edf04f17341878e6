package license

import "context"

// mockRegistry implements Registry for testing.
type mockRegistry struct {
	results map[string]*Result
	errors  map[string]error
	lookups []string
}

func (m *mockRegistry) Lookup(_ context.Context, searchTerm, _ string) (*Result, error) {
	m.lookups = append(m.lookups, searchTerm)
	if err, ok := m.errors[searchTerm]; ok {
		return nil, err
	}
	return m.results[searchTerm], nil
}
