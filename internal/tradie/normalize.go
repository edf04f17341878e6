package tradie

import (
	"fmt"
	"strings"
	"time"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/pkg/places"
)

// namePlaceholder is used when the gateway returns a place with no name.
const namePlaceholder = "Unknown Business"

// Normalize maps a raw place into a Tradie record for the given category.
// The assigned ID is provisional; final IDs are fixed at store save time.
func Normalize(p places.Place, cat config.CategorySpec, location string, provisionalID int, region config.RegionConfig) Tradie {
	name := strings.TrimSpace(p.DisplayName.Text)
	if name == "" {
		name = namePlaceholder
	}

	now := time.Now().UTC()
	return Tradie{
		ID:                 provisionalID,
		Name:               name,
		Category:           cat.Name,
		Phone:              strings.TrimSpace(p.NationalPhoneNumber),
		Website:            p.WebsiteURI,
		Address:            p.FormattedAddress,
		Rating:             p.Rating,
		ReviewCount:        p.UserRatingCount,
		Areas:              deriveAreas(p.FormattedAddress, region),
		Specialties:        cat.Specialties,
		Description:        describe(cat.Name, region.City),
		ExternalID:         p.ID,
		DiscoveredLocation: location,
		DiscoveredDate:     now,
		LastUpdated:        now,
	}
}

// deriveAreas extracts the locality from the second comma-delimited address
// segment, with the region suffix (e.g. " WA 6160") stripped. Addresses with
// fewer than two segments fall back to the metro area.
func deriveAreas(address string, region config.RegionConfig) []string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return []string{region.MetroArea}
	}

	area := strings.TrimSpace(parts[1])
	if idx := strings.Index(area, " "+region.Abbreviation); idx >= 0 {
		area = strings.TrimSpace(area[:idx])
	} else if area == region.Abbreviation || strings.HasPrefix(area, region.Abbreviation+" ") {
		area = ""
	}
	if area == "" {
		return []string{region.MetroArea}
	}
	return []string{area}
}

// describe builds the one-line description shown on the published page.
func describe(category, city string) string {
	return fmt.Sprintf("Professional %s services in %s.", strings.ReplaceAll(category, "_", " "), city)
}
