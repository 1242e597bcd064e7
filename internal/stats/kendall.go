package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrConstantSeries is returned when one series has no variation, which
// leaves the rank correlation undefined.
var ErrConstantSeries = errors.New("stats: series is constant")

// Correlation is a rank correlation coefficient with its two-sided p-value.
type Correlation struct {
	Coefficient float64
	PValue      float64
	N           int
}

// KendallTau computes Kendall's tau-b between paired series x and y, with a
// p-value from the tie-corrected normal approximation. Callers must pass at
// least two pairs; fewer is an error.
func KendallTau(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("stats: series lengths differ (%d vs %d)", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Correlation{}, fmt.Errorf("stats: need at least 2 pairs, got %d", n)
	}

	var concordant, discordant float64
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			s := sign(x[i]-x[j]) * sign(y[i]-y[j])
			switch {
			case s > 0:
				concordant++
			case s < 0:
				discordant++
			}
		}
	}

	tx := tieGroups(x)
	ty := tieGroups(y)

	nf := float64(n)
	n0 := nf * (nf - 1) / 2
	n1 := tiePairs(tx)
	n2 := tiePairs(ty)
	denom := math.Sqrt((n0 - n1) * (n0 - n2))
	if denom == 0 {
		return Correlation{N: n}, ErrConstantSeries
	}
	tau := (concordant - discordant) / denom

	v0 := nf * (nf - 1) * (2*nf + 5)
	vt, vu := 0.0, 0.0
	sumT1, sumU1 := 0.0, 0.0
	sumT2, sumU2 := 0.0, 0.0
	for _, t := range tx {
		vt += t * (t - 1) * (2*t + 5)
		sumT1 += t * (t - 1)
		sumT2 += t * (t - 1) * (t - 2)
	}
	for _, u := range ty {
		vu += u * (u - 1) * (2*u + 5)
		sumU1 += u * (u - 1)
		sumU2 += u * (u - 1) * (u - 2)
	}
	v := (v0-vt-vu)/18 + sumT1*sumU1/(2*nf*(nf-1))
	if n > 2 {
		v += sumT2 * sumU2 / (9 * nf * (nf - 1) * (nf - 2))
	}

	p := 1.0
	if v > 0 {
		z := (concordant - discordant) / math.Sqrt(v)
		p = 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	}
	return Correlation{Coefficient: tau, PValue: math.Min(p, 1), N: n}, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// tieGroups returns the sizes of groups of equal values with more than one member.
func tieGroups(xs []float64) []float64 {
	seen := make(map[float64]float64, len(xs))
	for _, x := range xs {
		seen[x]++
	}
	var groups []float64
	for _, c := range seen {
		if c > 1 {
			groups = append(groups, c)
		}
	}
	return groups
}

func tiePairs(groups []float64) float64 {
	total := 0.0
	for _, t := range groups {
		total += t * (t - 1) / 2
	}
	return total
}
