// Package tradie implements the canonical business record model, the
// normalize/filter/dedup pipeline stages, and the persistent JSON store.
package tradie

import (
	"time"
)

// Tradie is the canonical record for one real-world trade business.
type Tradie struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Address     string   `json:"address,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount"`
	Areas       []string `json:"areas"`
	Specialties []string `json:"specialties,omitempty"`
	Description string   `json:"description,omitempty"`

	// Licensed is tri-state: nil means verification has not run yet.
	Licensed          *bool      `json:"licensed"`
	LicenseNumber     string     `json:"licenseNumber,omitempty"`
	LicenseType       string     `json:"licenseType,omitempty"`
	LicenseHolderName string     `json:"licenseHolderName,omitempty"`
	LicenseStatus     string     `json:"licenseStatus,omitempty"`
	LicenseVerifiedAt *time.Time `json:"licenseVerifiedAt,omitempty"`

	// ExternalID is the identity token from the search gateway; when
	// present it is a strong dedup key.
	ExternalID string `json:"externalId,omitempty"`

	DiscoveredLocation string    `json:"discoveredLocation,omitempty"`
	DiscoveredDate     time.Time `json:"discoveredDate"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// VerificationStats summarizes license verification outcomes across the store.
type VerificationStats struct {
	TotalChecked     int     `json:"totalChecked"`
	Licensed         int     `json:"licensed"`
	Unlicensed       int     `json:"unlicensed"`
	VerificationRate float64 `json:"verificationRate"`
}

// Document is the persisted store layout. All fields except Tradies are
// derived and recomputed on every save.
type Document struct {
	LastUpdated              time.Time         `json:"lastUpdated"`
	RunID                    string            `json:"runId,omitempty"`
	TotalTradies             int               `json:"totalTradies"`
	APICallsUsed             int               `json:"apiCallsUsed"`
	Breakdown                map[string]int    `json:"breakdown"`
	LicenseVerificationStats VerificationStats `json:"licenseVerificationStats"`
	Tradies                  []Tradie          `json:"tradies"`
}
