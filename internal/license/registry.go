// Package license verifies tradies against a licensing registry and merges
// the outcome into their license fields.
package license

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Result is a positive registry lookup outcome.
type Result struct {
	LicenseNumber string `yaml:"license_number"`
	LicenseType   string `yaml:"license_type"`
	HolderName    string `yaml:"holder_name"`
	Status        string `yaml:"status"`
}

// Registry answers whether a search term is licensed for a trade category.
// Implementations must be deterministic: the same term and category always
// produce the same outcome. A nil Result with a nil error means not found.
type Registry interface {
	Lookup(ctx context.Context, searchTerm, category string) (*Result, error)
}

// snapshotEntry is one licensee row in the registry snapshot file.
type snapshotEntry struct {
	Name          string `yaml:"name"`
	LicenseNumber string `yaml:"license_number"`
	LicenseType   string `yaml:"license_type"`
	HolderName    string `yaml:"holder_name"`
	Status        string `yaml:"status"`
}

// SnapshotRegistry resolves lookups against a local snapshot of the public
// licensing register. Matching is deterministic: the first entry (in file
// order) whose licensee name contains the search term and whose license
// type matches the category wins.
type SnapshotRegistry struct {
	entries      []snapshotEntry
	licenseTypes map[string]string
}

// LoadSnapshot reads a registry snapshot from a YAML file. licenseTypes
// maps trade categories to the license type codes used in the snapshot.
func LoadSnapshot(path string, licenseTypes map[string]string) (*SnapshotRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "license: read registry snapshot %s", path)
	}

	var doc struct {
		Entries []snapshotEntry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "license: parse registry snapshot %s", path)
	}

	return &SnapshotRegistry{
		entries:      doc.Entries,
		licenseTypes: licenseTypes,
	}, nil
}

// NewSnapshotRegistry builds a registry from in-memory results keyed by
// licensee name, used by tests and seed tooling. Entries are ordered by
// name so lookups stay deterministic.
func NewSnapshotRegistry(entries map[string]Result, licenseTypes map[string]string) *SnapshotRegistry {
	reg := &SnapshotRegistry{licenseTypes: licenseTypes}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res := entries[name]
		reg.entries = append(reg.entries, snapshotEntry{
			Name:          name,
			LicenseNumber: res.LicenseNumber,
			LicenseType:   res.LicenseType,
			HolderName:    res.HolderName,
			Status:        res.Status,
		})
	}
	return reg
}

// Lookup implements Registry.
func (r *SnapshotRegistry) Lookup(_ context.Context, searchTerm, category string) (*Result, error) {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return nil, nil
	}

	wantType := r.licenseTypes[category]
	for _, e := range r.entries {
		if wantType != "" && e.LicenseType != "" && e.LicenseType != wantType {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), term) {
			return &Result{
				LicenseNumber: e.LicenseNumber,
				LicenseType:   e.LicenseType,
				HolderName:    e.HolderName,
				Status:        e.Status,
			}, nil
		}
	}
	return nil, nil
}
