package practice

import (
	"github.com/gp-wales/internal/stats"
)

// SizeLabel classifies a practice against the population median.
type SizeLabel string

const (
	Big   SizeLabel = "Big"
	Small SizeLabel = "Small"
)

// Population is an immutable snapshot of per-practice prescription-row
// counts. The median is computed once per snapshot; Refresh builds a new
// snapshot when the underlying counts change.
type Population struct {
	counts map[string]int64
	median float64
}

// NewPopulation copies counts and computes their median.
func NewPopulation(counts map[string]int64) *Population {
	own := make(map[string]int64, len(counts))
	values := make([]float64, 0, len(counts))
	for id, n := range counts {
		own[id] = n
		values = append(values, float64(n))
	}
	return &Population{counts: own, median: stats.Median(values)}
}

// Refresh returns a new snapshot for updated counts. The receiver is left
// unchanged so callers holding it keep consistent answers.
func (p *Population) Refresh(counts map[string]int64) *Population {
	return NewPopulation(counts)
}

// Median is the median row count across all practices.
func (p *Population) Median() float64 {
	return p.median
}

// Count returns the row count for a practice, 0 if it has none.
func (p *Population) Count(practiceID string) int64 {
	return p.counts[practiceID]
}

// Size is the number of practices in the snapshot.
func (p *Population) Size() int {
	return len(p.counts)
}

// Classify labels a practice Big when its row count is strictly greater
// than the median. Ties and practices with no rows are Small.
func (p *Population) Classify(practiceID string) SizeLabel {
	if float64(p.Count(practiceID)) > p.median {
		return Big
	}
	return Small
}
