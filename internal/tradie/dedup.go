package tradie

import "strings"

// IsDuplicate reports whether candidate refers to the same real-world
// business as any record in existing. A candidate is a duplicate when any
// of the following holds: case-insensitive name equality, equal non-empty
// phones, or equal non-empty external IDs. First-seen wins; callers drop
// later duplicates rather than merging them.
func IsDuplicate(existing []Tradie, candidate Tradie) bool {
	for i := range existing {
		if matches(&existing[i], &candidate) {
			return true
		}
	}
	return false
}

func matches(a, b *Tradie) bool {
	if strings.EqualFold(a.Name, b.Name) {
		return true
	}
	if a.Phone != "" && b.Phone != "" && a.Phone == b.Phone {
		return true
	}
	if a.ExternalID != "" && b.ExternalID != "" && a.ExternalID == b.ExternalID {
		return true
	}
	return false
}
