package stats

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{9, 1, 5}, 5},
		{"even averages middles", []float64{4, 1, 3, 2}, 2.5},
		{"skewed", []float64{1, 2, 3, 1000}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.in); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("Median reordered its input: %v", in)
	}
}

func TestCentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := Centile(values, 9); got != 90 {
		t.Errorf("Centile(9) = %v, want 90", got)
	}
	if got := Centile(values, 0.5); got != 0 {
		t.Errorf("Centile(0.5) = %v, want 0", got)
	}
	if got := Centile(nil, 1); got != 0 {
		t.Errorf("Centile(nil) = %v, want 0", got)
	}
}

func TestZScores(t *testing.T) {
	z := ZScores([]float64{2, 4, 6})
	if math.Abs(z[0]+1) > 1e-9 || math.Abs(z[1]) > 1e-9 || math.Abs(z[2]-1) > 1e-9 {
		t.Errorf("ZScores = %v, want [-1 0 1]", z)
	}
	for _, v := range ZScores([]float64{5, 5, 5}) {
		if v != 0 {
			t.Errorf("constant series z-score = %v, want 0", v)
		}
	}
}

func TestKendallTau(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		wantTau float64
	}{
		{"perfect agreement", []float64{1, 2, 3, 4, 5}, []float64{10, 20, 30, 40, 50}, 1},
		{"perfect disagreement", []float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}, -1},
		{"mixed", []float64{1, 2, 3, 4, 5}, []float64{3, 1, 2, 5, 4}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := KendallTau(tt.x, tt.y)
			if err != nil {
				t.Fatalf("KendallTau() error = %v", err)
			}
			if math.Abs(c.Coefficient-tt.wantTau) > 1e-9 {
				t.Errorf("tau = %v, want %v", c.Coefficient, tt.wantTau)
			}
			if c.N != len(tt.x) {
				t.Errorf("N = %d, want %d", c.N, len(tt.x))
			}
			if c.PValue < 0 || c.PValue > 1 {
				t.Errorf("p-value %v out of range", c.PValue)
			}
		})
	}
}

func TestKendallTauPValue(t *testing.T) {
	// n=5, S=10, var = 5*4*15/18 -> z = 2.449, p = 0.0143
	c, err := KendallTau([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.PValue-0.0143) > 0.0005 {
		t.Errorf("p = %v, want about 0.0143", c.PValue)
	}
}

func TestKendallTauWithTies(t *testing.T) {
	c, err := KendallTau([]float64{1, 1, 2, 3}, []float64{1, 2, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	// C=4, D=0, n0=6, n1=1, n2=1 -> 4/5
	if math.Abs(c.Coefficient-0.8) > 1e-9 {
		t.Errorf("tau-b = %v, want 0.8", c.Coefficient)
	}
}

func TestKendallTauErrors(t *testing.T) {
	if _, err := KendallTau([]float64{1}, []float64{1}); err == nil {
		t.Error("expected error for a single pair")
	}
	if _, err := KendallTau([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	_, err := KendallTau([]float64{4, 4, 4}, []float64{1, 2, 3})
	if !errors.Is(err, ErrConstantSeries) {
		t.Errorf("error = %v, want ErrConstantSeries", err)
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		coef     float64
		p        float64
		strength Strength
		sig      Significance
	}{
		{0.05, 0.5, VeryWeak, NotSignificant},
		{-0.09, 0.2, VeryWeak, NotSignificant},
		{0.1, 0.04, Weak, Significant},
		{-0.29, 0.01, Weak, Significant},
		{0.3, 0.05, Moderate, NotSignificant},
		{0.45, 0.001, Moderate, Significant},
		{0.5, 0.01, Strong, Significant},
		{0.65, 0.01, Strong, Significant},
		{-0.9, 0.3, Strong, NotSignificant},
	}

	for _, tt := range tests {
		s, sig := Interpret(tt.coef, tt.p)
		if s != tt.strength || sig != tt.sig {
			t.Errorf("Interpret(%v, %v) = (%s, %s), want (%s, %s)",
				tt.coef, tt.p, s, sig, tt.strength, tt.sig)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b float64
		want Comparison
	}{
		{0.2, -0.6, BStronger},
		{-0.7, 0.3, AStronger},
		{0.4, -0.4, Equal},
		{0, 0, Equal},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(Correlation{Coefficient: -0.35, PValue: 0.002, N: 40}, "statin items", "CHD prevalence")
	for _, want := range []string{"moderate negative", "statistically significant", "n = 40"} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() = %q, missing %q", got, want)
		}
	}

	cmp := DescribeComparison(
		Correlation{Coefficient: 0.2}, Correlation{Coefficient: -0.6},
		"hypertension", "obesity")
	if !strings.HasPrefix(cmp, "The correlation with obesity") {
		t.Errorf("DescribeComparison() = %q", cmp)
	}
}

func TestKMeansSeparatesBlobs(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0.2}, {0.2, 0.1}, {-0.1, 0},
		{10, 10}, {10.2, 9.9}, {9.8, 10.1}, {10.1, 10.2},
	}
	res, err := KMeans(points, 2, 7)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}
	for i := 1; i < 4; i++ {
		if res.Assignments[i] != res.Assignments[0] {
			t.Errorf("point %d not clustered with point 0", i)
		}
	}
	for i := 5; i < 8; i++ {
		if res.Assignments[i] != res.Assignments[4] {
			t.Errorf("point %d not clustered with point 4", i)
		}
	}
	if res.Assignments[0] == res.Assignments[4] {
		t.Error("blobs share a cluster")
	}
	if res.Sizes[0]+res.Sizes[1] != len(points) {
		t.Errorf("sizes %v do not sum to %d", res.Sizes, len(points))
	}
}

func TestKMeansDeterministic(t *testing.T) {
	points := [][]float64{{1, 2}, {2, 1}, {5, 5}, {6, 5}, {9, 1}, {8, 2}, {3, 3}}
	a, err := KMeans(points, 3, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := KMeans(points, 3, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Assignments {
		if a.Assignments[i] != b.Assignments[i] {
			t.Fatalf("assignments differ at %d: %v vs %v", i, a.Assignments, b.Assignments)
		}
	}
}

func TestKMeansErrors(t *testing.T) {
	if _, err := KMeans([][]float64{{1}}, 0, 1); err == nil {
		t.Error("expected error for k=0")
	}
	if _, err := KMeans([][]float64{{1}}, 2, 1); err == nil {
		t.Error("expected error for k > points")
	}
	if _, err := KMeans([][]float64{{1, 2}, {1}}, 1, 1); err == nil {
		t.Error("expected error for ragged points")
	}
}

func TestKMeansDuplicatePoints(t *testing.T) {
	points := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	res, err := KMeans(points, 3, 1)
	if err != nil {
		t.Fatalf("KMeans() error = %v", err)
	}
	if len(res.Centroids) != 3 {
		t.Errorf("got %d centroids, want 3", len(res.Centroids))
	}
}
