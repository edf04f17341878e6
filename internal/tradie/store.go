package tradie

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
)

// Store is the accumulating JSON document holding all known tradies plus
// run metadata. It is read once at the start of a run and written once at
// the end; concurrent runs against the same file are out of scope.
type Store struct {
	path     string
	doc      Document
	apiCalls int
}

// Open loads the store at path. A missing file yields an empty store;
// malformed JSON is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, eris.Wrapf(err, "store: read %s", path)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, eris.Wrapf(err, "store: parse %s", path)
	}
	s.apiCalls = s.doc.APICallsUsed

	return s, nil
}

// All returns the live tradie slice. Callers may mutate records in place;
// changes are persisted on the next Save.
func (s *Store) All() []Tradie {
	return s.doc.Tradies
}

// Len returns the number of stored tradies.
func (s *Store) Len() int {
	return len(s.doc.Tradies)
}

// Snapshot returns the document as last loaded or saved. The tradie slice
// is shared; treat the result as read-only.
func (s *Store) Snapshot() Document {
	return s.doc
}

// Append adds newly discovered tradies to the store. Dedup happens before
// this point; Append performs no identity checks.
func (s *Store) Append(ts ...Tradie) {
	s.doc.Tradies = append(s.doc.Tradies, ts...)
}

// SetRun records the identifier and API call count of the current run.
func (s *Store) SetRun(runID string, apiCalls int) {
	s.doc.RunID = runID
	s.apiCalls = apiCalls
}

// Save recomputes all derived metadata from the current tradie sequence,
// finalizes IDs, and atomically replaces the store file.
func (s *Store) Save() error {
	s.finalizeIDs()

	s.doc.LastUpdated = time.Now().UTC()
	s.doc.TotalTradies = len(s.doc.Tradies)
	s.doc.APICallsUsed = s.apiCalls
	s.doc.Breakdown = breakdown(s.doc.Tradies)
	s.doc.LicenseVerificationStats = verificationStats(s.doc.Tradies)

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal")
	}
	data = append(data, '\n')

	// Whole-file atomic replace: write a sibling temp file, then rename.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tradies-*.json")
	if err != nil {
		return eris.Wrap(err, "store: create temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return eris.Wrap(err, "store: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrap(err, "store: close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrapf(err, "store: replace %s", s.path)
	}

	return nil
}

// finalizeIDs assigns a stable unique ID to every record. IDs already held
// by pre-existing records are never reassigned; provisional IDs that clash
// or are unset get the next free value.
func (s *Store) finalizeIDs() {
	next := 1
	for _, t := range s.doc.Tradies {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	kept := make(map[int]bool, len(s.doc.Tradies))
	for i := range s.doc.Tradies {
		id := s.doc.Tradies[i].ID
		if id > 0 && !kept[id] {
			kept[id] = true
			continue
		}
		s.doc.Tradies[i].ID = next
		kept[next] = true
		next++
	}
}

func breakdown(ts []Tradie) map[string]int {
	b := make(map[string]int)
	for _, t := range ts {
		b[t.Category]++
	}
	return b
}

func verificationStats(ts []Tradie) VerificationStats {
	var stats VerificationStats
	for _, t := range ts {
		if t.Licensed == nil {
			continue
		}
		stats.TotalChecked++
		if *t.Licensed {
			stats.Licensed++
		} else {
			stats.Unlicensed++
		}
	}
	if stats.TotalChecked > 0 {
		stats.VerificationRate = float64(stats.Licensed) / float64(stats.TotalChecked)
	}
	return stats
}
