package tradie

import (
	"strings"

	"github.com/ropnep/trustedtrades/internal/config"
)

// Rejection reason codes.
const (
	ReasonExcludedName   = "excluded_name"
	ReasonOutOfRegion    = "out_of_region"
	ReasonIrrelevantTags = "irrelevant_tags"
)

// Filter decides whether a normalized record represents a genuine in-scope
// trade business. All checks are driven by keyword configuration.
type Filter struct {
	exclusions []string
	regionAbbr string
	regionName string
}

// NewFilter creates a Filter from keyword and region configuration.
func NewFilter(kw *config.Keywords, region config.RegionConfig) *Filter {
	return &Filter{
		exclusions: kw.Exclusions,
		regionAbbr: region.Abbreviation,
		regionName: region.Name,
	}
}

// Reject reports whether the record should be dropped, and why. The three
// checks are independent; any single failing check rejects the record.
func (f *Filter) Reject(t Tradie, tags []string, cat config.CategorySpec) (bool, string) {
	if f.nameExcluded(t.Name) {
		return true, ReasonExcludedName
	}
	// A missing address is not evidence of being out of region.
	if t.Address != "" && !f.inRegion(t.Address) {
		return true, ReasonOutOfRegion
	}
	// An empty tag set does not itself cause rejection.
	if len(tags) > 0 && !relevantTags(tags, cat.RelevantTags) {
		return true, ReasonIrrelevantTags
	}
	return false, ""
}

func (f *Filter) nameExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range f.exclusions {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (f *Filter) inRegion(address string) bool {
	return strings.Contains(address, f.regionAbbr) ||
		strings.Contains(strings.ToLower(address), strings.ToLower(f.regionName))
}

// relevantTags reports whether any tag matches the category allow-list.
// Tags containing a "contractor" or "service" substring also count.
func relevantTags(tags, allowed []string) bool {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "contractor") || strings.Contains(lower, "service") {
			return true
		}
		for _, a := range allowed {
			if lower == strings.ToLower(a) {
				return true
			}
		}
	}
	return false
}
