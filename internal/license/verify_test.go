package license

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/tradie"
)

func testSuffixes() []string {
	return config.DefaultKeywords().LegalSuffixes
}

func TestSearchVariants(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{
			// Suffix stripping removes both the legal and the trade
			// suffix; "ABC" is only three characters so no word
			// variants are added.
			name: "ABC Electrical Pty Ltd",
			want: []string{"ABC Electrical Pty Ltd", "ABC"},
		},
		{
			name: "Brightspark Electrical Services Pty Ltd",
			want: []string{"Brightspark Electrical Services Pty Ltd", "Brightspark"},
		},
		{
			// No suffix to strip: the stripped variant dedups against
			// the full name; first and last words both qualify.
			name: "Western Power Solutions",
			want: []string{"Western Power Solutions", "Western", "Solutions"},
		},
		{
			name: "Smith Plumbing",
			want: []string{"Smith Plumbing", "Smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchVariants(tt.name, testSuffixes()))
		})
	}
}

func TestStripSuffixes(t *testing.T) {
	suffixes := testSuffixes()
	assert.Equal(t, "ABC", StripSuffixes("ABC Electrical Pty Ltd", suffixes))
	assert.Equal(t, "abc", StripSuffixes("abc ELECTRICAL pty ltd", suffixes))
	assert.Equal(t, "Western Power Solutions", StripSuffixes("Western Power Solutions", suffixes))
}

func TestVerifyAll_SuffixStrippedVariantMatches(t *testing.T) {
	reg := &mockRegistry{
		results: map[string]*Result{
			"ABC": {LicenseNumber: "EC 12345", LicenseType: "EC", HolderName: "ABC Electrical Contractors", Status: "Current"},
		},
	}
	v := NewVerifier(reg, testSuffixes(), 0)

	ts := []tradie.Tradie{{Name: "ABC Electrical Pty Ltd", Category: "electrician"}}
	summary, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.Licensed)
	require.NotNil(t, ts[0].Licensed)
	assert.True(t, *ts[0].Licensed)
	assert.Equal(t, "EC 12345", ts[0].LicenseNumber)
	assert.Equal(t, "EC", ts[0].LicenseType)
	assert.Equal(t, "ABC Electrical Contractors", ts[0].LicenseHolderName)
	assert.Equal(t, "Current", ts[0].LicenseStatus)
	require.NotNil(t, ts[0].LicenseVerifiedAt)

	// Both variants were tried in order, full name first.
	assert.Equal(t, []string{"ABC Electrical Pty Ltd", "ABC"}, reg.lookups)
}

func TestVerifyAll_FirstMatchingVariantWins(t *testing.T) {
	// Both variants would match; the first must win and later variants
	// must not be queried at all.
	reg := &mockRegistry{
		results: map[string]*Result{
			"ABC Electrical Pty Ltd": {LicenseNumber: "EC 11111", Status: "Current"},
			"ABC":                    {LicenseNumber: "EC 99999", Status: "Current"},
		},
	}
	v := NewVerifier(reg, testSuffixes(), 0)

	ts := []tradie.Tradie{{Name: "ABC Electrical Pty Ltd", Category: "electrician"}}
	_, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	assert.Equal(t, "EC 11111", ts[0].LicenseNumber)
	assert.Equal(t, []string{"ABC Electrical Pty Ltd"}, reg.lookups)
}

func TestVerifyAll_NoMatchRecordsNegativeOutcome(t *testing.T) {
	reg := &mockRegistry{}
	v := NewVerifier(reg, testSuffixes(), 0)

	ts := []tradie.Tradie{{
		Name:          "Ghost Plumbing Pty Ltd",
		Category:      "plumber",
		LicenseNumber: "stale-number",
	}}
	summary, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Unlicensed)
	require.NotNil(t, ts[0].Licensed)
	assert.False(t, *ts[0].Licensed)
	assert.Empty(t, ts[0].LicenseNumber)
	assert.Equal(t, "not_found", ts[0].LicenseStatus)
	// Verification occurring is itself recorded even on a negative result.
	require.NotNil(t, ts[0].LicenseVerifiedAt)
}

func TestVerifyAll_NonLicenseFieldsUntouched(t *testing.T) {
	reg := &mockRegistry{
		results: map[string]*Result{
			"ABC": {LicenseNumber: "EC 12345", Status: "Current"},
		},
	}
	v := NewVerifier(reg, testSuffixes(), 0)

	discovered := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	before := tradie.Tradie{
		ID:                 7,
		Name:               "ABC Electrical Pty Ltd",
		Category:           "electrician",
		Phone:              "0400 111 111",
		Website:            "https://abcelectrical.com.au",
		Address:            "10 High St, Fremantle WA 6160",
		Rating:             4.5,
		ReviewCount:        12,
		Areas:              []string{"Fremantle"},
		Specialties:        []string{"Residential wiring"},
		Description:        "Professional electrician services in Perth.",
		ExternalID:         "ChIJ-abc",
		DiscoveredLocation: "Fremantle WA",
		DiscoveredDate:     discovered,
		LastUpdated:        discovered,
	}

	ts := []tradie.Tradie{before}
	_, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	after := ts[0]
	// Strip license fields back off and compare the rest wholesale.
	after.Licensed = before.Licensed
	after.LicenseNumber = before.LicenseNumber
	after.LicenseType = before.LicenseType
	after.LicenseHolderName = before.LicenseHolderName
	after.LicenseStatus = before.LicenseStatus
	after.LicenseVerifiedAt = before.LicenseVerifiedAt
	assert.Equal(t, before, after)
}

func TestVerifyAll_RegistryErrorTreatedAsNoMatch(t *testing.T) {
	reg := &mockRegistry{
		errors: map[string]error{
			"ABC Electrical Pty Ltd": eris.New("registry: timeout"),
		},
		results: map[string]*Result{
			"ABC": {LicenseNumber: "EC 12345", Status: "Current"},
		},
	}
	v := NewVerifier(reg, testSuffixes(), 0)

	ts := []tradie.Tradie{{Name: "ABC Electrical Pty Ltd", Category: "electrician"}}
	summary, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	// The failing variant is skipped; the next variant still matches.
	assert.Equal(t, 1, summary.Licensed)
	assert.Equal(t, "EC 12345", ts[0].LicenseNumber)
}

func TestVerifyAll_MultipleRecords(t *testing.T) {
	reg := &mockRegistry{
		results: map[string]*Result{
			"ABC": {LicenseNumber: "EC 12345", Status: "Current"},
		},
	}
	v := NewVerifier(reg, testSuffixes(), 0)

	ts := []tradie.Tradie{
		{Name: "ABC Electrical Pty Ltd", Category: "electrician"},
		{Name: "Ghost Plumbing", Category: "plumber"},
	}
	summary, err := v.VerifyAll(context.Background(), ts)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Licensed)
	assert.Equal(t, 1, summary.Unlicensed)
}
