package stats

import (
	"fmt"
	"math"
)

// Strength describes the magnitude of a correlation coefficient.
type Strength string

const (
	VeryWeak Strength = "very weak"
	Weak     Strength = "weak"
	Moderate Strength = "moderate"
	Strong   Strength = "strong"
)

// Significance describes a p-value against the 5% level.
type Significance string

const (
	Significant    Significance = "statistically significant"
	NotSignificant Significance = "not statistically significant"
)

// SignificanceLevel is the p-value cut-off.
const SignificanceLevel = 0.05

// Interpret labels a coefficient by |r| (<0.1 very weak, <0.3 weak,
// <0.5 moderate, otherwise strong) and a p-value by p < 0.05.
func Interpret(coefficient, pValue float64) (Strength, Significance) {
	var s Strength
	switch r := math.Abs(coefficient); {
	case r < 0.1:
		s = VeryWeak
	case r < 0.3:
		s = Weak
	case r < 0.5:
		s = Moderate
	default:
		s = Strong
	}

	sig := NotSignificant
	if pValue < SignificanceLevel {
		sig = Significant
	}
	return s, sig
}

// Comparison is the outcome of comparing two correlations by magnitude.
type Comparison int

const (
	Equal Comparison = iota
	AStronger
	BStronger
)

func (c Comparison) String() string {
	switch c {
	case AStronger:
		return "A stronger"
	case BStronger:
		return "B stronger"
	}
	return "equal"
}

// Compare compares |a| with |b|; the sign of either coefficient is ignored.
func Compare(a, b float64) Comparison {
	ma, mb := math.Abs(a), math.Abs(b)
	switch {
	case ma > mb:
		return AStronger
	case mb > ma:
		return BStronger
	}
	return Equal
}

// Describe renders one sentence about a correlation between two named measures.
func Describe(c Correlation, xName, yName string) string {
	strength, sig := Interpret(c.Coefficient, c.PValue)
	direction := "positive"
	if c.Coefficient < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("There is a %s %s correlation (tau = %.3f, p = %.4f, n = %d) between %s and %s, which is %s.",
		strength, direction, c.Coefficient, c.PValue, c.N, xName, yName, sig)
}

// DescribeComparison narrates which of two correlations is stronger.
func DescribeComparison(a, b Correlation, aName, bName string) string {
	switch Compare(a.Coefficient, b.Coefficient) {
	case AStronger:
		return fmt.Sprintf("The correlation with %s (|tau| = %.3f) is stronger than with %s (|tau| = %.3f).",
			aName, math.Abs(a.Coefficient), bName, math.Abs(b.Coefficient))
	case BStronger:
		return fmt.Sprintf("The correlation with %s (|tau| = %.3f) is stronger than with %s (|tau| = %.3f).",
			bName, math.Abs(b.Coefficient), aName, math.Abs(a.Coefficient))
	}
	return fmt.Sprintf("The correlations with %s and %s are equally strong (|tau| = %.3f).",
		aName, bName, math.Abs(a.Coefficient))
}
