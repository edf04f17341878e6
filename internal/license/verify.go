package license

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ropnep/trustedtrades/internal/tradie"
)

// Verifier runs license verification over the store and merges outcomes
// into each record's license fields, touching nothing else.
type Verifier struct {
	registry Registry
	limiter  *rate.Limiter
	suffixes []string
	now      func() time.Time
}

// NewVerifier creates a Verifier. delay bounds the request rate to the
// registry; suffixes is the legal/trade suffix list used when generating
// search-term variants.
func NewVerifier(registry Registry, suffixes []string, delay time.Duration) *Verifier {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Verifier{
		registry: registry,
		limiter:  limiter,
		suffixes: suffixes,
		now:      time.Now,
	}
}

// Summary holds the outcome counts of a verification pass.
type Summary struct {
	Checked    int
	Licensed   int
	Unlicensed int
}

// VerifyAll verifies every tradie in place. A registry error for a single
// variant is treated as no match for that variant and never aborts the pass.
func (v *Verifier) VerifyAll(ctx context.Context, ts []tradie.Tradie) (*Summary, error) {
	log := zap.L().With(zap.String("component", "license"))
	summary := &Summary{}

	for i := range ts {
		if err := v.limiter.Wait(ctx); err != nil {
			return summary, eris.Wrap(err, "license: rate limit wait")
		}

		match := v.lookup(ctx, &ts[i], log)
		v.merge(&ts[i], match)
		summary.Checked++
		if match != nil {
			summary.Licensed++
		} else {
			summary.Unlicensed++
		}
	}

	log.Info("verification pass complete",
		zap.Int("checked", summary.Checked),
		zap.Int("licensed", summary.Licensed),
		zap.Int("unlicensed", summary.Unlicensed),
	)

	return summary, nil
}

// lookup queries the registry with each search-term variant in order,
// short-circuiting on the first match.
func (v *Verifier) lookup(ctx context.Context, t *tradie.Tradie, log *zap.Logger) *Result {
	for _, term := range SearchVariants(t.Name, v.suffixes) {
		res, err := v.registry.Lookup(ctx, term, t.Category)
		if err != nil {
			log.Warn("registry lookup failed",
				zap.String("name", t.Name),
				zap.String("term", term),
				zap.Error(err),
			)
			continue
		}
		if res != nil {
			return res
		}
	}
	return nil
}

// merge writes the verification outcome as one atomic set of license-field
// updates. A negative outcome is recorded too: verification having occurred
// is itself state.
func (v *Verifier) merge(t *tradie.Tradie, res *Result) {
	now := v.now().UTC()
	licensed := res != nil
	t.Licensed = &licensed
	t.LicenseVerifiedAt = &now
	if res != nil {
		t.LicenseNumber = res.LicenseNumber
		t.LicenseType = res.LicenseType
		t.LicenseHolderName = res.HolderName
		t.LicenseStatus = res.Status
		return
	}
	t.LicenseNumber = ""
	t.LicenseType = ""
	t.LicenseHolderName = ""
	t.LicenseStatus = "not_found"
}

// SearchVariants generates the ordered, deduplicated search terms tried
// against the registry for a business name: the full name, the name with
// trailing legal/trade suffixes stripped, the first word of the name when
// longer than three characters, and the last word of the stripped name
// when longer than three characters.
func SearchVariants(name string, suffixes []string) []string {
	name = strings.TrimSpace(name)
	stripped := StripSuffixes(name, suffixes)

	candidates := []string{name, stripped}
	if fields := strings.Fields(name); len(fields) > 0 && len(fields[0]) > 3 {
		candidates = append(candidates, fields[0])
	}
	if fields := strings.Fields(stripped); len(fields) > 0 {
		last := fields[len(fields)-1]
		if len(last) > 3 {
			candidates = append(candidates, last)
		}
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		variants = append(variants, c)
	}
	return variants
}

// StripSuffixes repeatedly removes trailing suffix words from the list
// (case-insensitive) until the name no longer ends with any of them.
func StripSuffixes(name string, suffixes []string) string {
	name = strings.TrimSpace(name)
	for {
		stripped := false
		lower := strings.ToLower(name)
		for _, suffix := range suffixes {
			s := strings.ToLower(strings.TrimSpace(suffix))
			if s == "" {
				continue
			}
			if strings.HasSuffix(lower, " "+s) {
				name = strings.TrimSpace(name[:len(name)-len(s)-1])
				stripped = true
				break
			}
		}
		if !stripped {
			return name
		}
	}
}
