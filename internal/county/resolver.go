package county

import (
	"fmt"
	"strings"

	"github.com/gp-wales/internal/normalize"
)

// MatchMode selects how a postcode is compared with an authority's
// district list in the postcode fallback.
type MatchMode int

const (
	// MatchOutward compares the postcode's outward code with each listed
	// district exactly.
	MatchOutward MatchMode = iota
	// MatchLegacySubstring searches for the first four characters of the
	// postcode anywhere inside the space-joined district list. A postcode
	// typed as "CF31AB" yields "CF31" and lands in Bridgend rather than
	// Cardiff; the mode exists so results can be compared with older reports.
	MatchLegacySubstring
)

// ParseMatchMode accepts "outward" or "legacy".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outward":
		return MatchOutward, nil
	case "legacy":
		return MatchLegacySubstring, nil
	}
	return MatchOutward, fmt.Errorf("unknown postcode match mode %q", s)
}

func (m MatchMode) String() string {
	if m == MatchLegacySubstring {
		return "legacy"
	}
	return "outward"
}

// Resolver assigns practices to authorities. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	mode   MatchMode
	joined []string // space-joined district lists, parallel to postcodeRanges
}

// NewResolver builds a resolver using the given postcode match mode.
func NewResolver(mode MatchMode) *Resolver {
	joined := make([]string, len(postcodeRanges))
	for i, pr := range postcodeRanges {
		joined[i] = strings.Join(pr.districts, " ") + " "
	}
	return &Resolver{mode: mode, joined: joined}
}

// Mode reports the postcode match mode.
func (r *Resolver) Mode() MatchMode {
	return r.mode
}

var defaultResolver = NewResolver(MatchOutward)

// Resolve uses the default outward-code resolver.
func Resolve(postcode, county, posttown string) County {
	return defaultResolver.Resolve(postcode, county, posttown)
}

// Resolve returns the authority for a practice address, or Unknown.
//
// The free-text fields are standardised first. When that produces a new
// value it is used; when it leaves the county as it was, or yields nothing,
// the postcode district decides.
func (r *Resolver) Resolve(postcode, county, posttown string) County {
	if std := r.Standardize(county, posttown); std != "" && std != county {
		if c, ok := Parse(std); ok {
			return c
		}
	}
	return r.PostcodeCounty(postcode)
}

// Standardize rewrites a free-text county field.
//
// A county naming Glamorgan without "Vale" is ambiguous, so it is replaced
// by whatever the post-town indicates, possibly nothing. Any other county is
// tested against the keyword rules, and returned untouched when none match.
func (r *Resolver) Standardize(county, posttown string) string {
	corrected := r.TownCounty(posttown)

	lower := strings.ToLower(county)
	if strings.Contains(lower, "glamorgan") && !strings.Contains(lower, "vale") {
		return string(corrected)
	}

	upper := normalize.Text(county)
	for _, rule := range countyRules {
		if strings.Contains(upper, rule.keyword) {
			return string(rule.county)
		}
	}
	return county
}

// TownCounty returns the authority of the first town name contained in the
// post-town, or Unknown.
func (r *Resolver) TownCounty(posttown string) County {
	town := strings.ToLower(normalize.Text(posttown))
	if town == "" {
		return Unknown
	}
	for _, tr := range towns {
		if strings.Contains(town, tr.town) {
			return tr.county
		}
	}
	return Unknown
}

// PostcodeCounty returns the first authority whose district list matches
// the postcode, or Unknown.
func (r *Resolver) PostcodeCounty(postcode string) County {
	if r.mode == MatchLegacySubstring {
		prefix := normalize.Prefix(postcode, 4)
		if prefix == "" {
			return Unknown
		}
		for i, joined := range r.joined {
			if strings.Contains(joined, prefix) {
				return postcodeRanges[i].county
			}
		}
		return Unknown
	}

	outward := normalize.OutwardCode(postcode)
	if outward == "" {
		return Unknown
	}
	for _, pr := range postcodeRanges {
		for _, d := range pr.districts {
			if d == outward {
				return pr.county
			}
		}
	}
	return Unknown
}

// Districts returns the postcode districts listed for an authority.
func Districts(c County) []string {
	var out []string
	for _, pr := range postcodeRanges {
		if pr.county == c {
			out = append(out, pr.districts...)
		}
	}
	return out
}
