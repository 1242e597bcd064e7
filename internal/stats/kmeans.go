package stats

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Clustering is the result of a k-means run.
type Clustering struct {
	Assignments []int       // cluster index per input point
	Centroids   [][]float64 // one per cluster
	Sizes       []int
	Iterations  int
}

const maxKMeansIterations = 100

// KMeans partitions points into k clusters with Lloyd's algorithm and
// k-means++ seeding. The same seed always gives the same clustering.
func KMeans(points [][]float64, k int, seed int64) (*Clustering, error) {
	if k < 1 {
		return nil, fmt.Errorf("stats: k must be positive, got %d", k)
	}
	if k > len(points) {
		return nil, fmt.Errorf("stats: k=%d exceeds %d points", k, len(points))
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("stats: point %d has %d dimensions, want %d", i, len(p), dim)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(points, k, rng)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	iter := 0
	for iter < maxKMeansIterations {
		iter++
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		updateCentroids(points, assign, centroids)
	}

	sizes := make([]int, k)
	for _, a := range assign {
		sizes[a]++
	}
	return &Clustering{Assignments: assign, Centroids: centroids, Sizes: sizes, Iterations: iter}, nil
}

// seedCentroids picks initial centres with probability proportional to the
// squared distance from the nearest centre already chosen.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	chosen := make([]bool, len(points))
	first := rng.Intn(len(points))
	chosen[first] = true
	centroids := [][]float64{clone(points[first])}

	d2 := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := floats.Distance(p, centroids[nearest(p, centroids)], 2)
			d2[i] = d * d
			total += d2[i]
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			for i, w := range d2 {
				target -= w
				if target <= 0 && w > 0 {
					next = i
					break
				}
			}
		}
		if next == -1 {
			// All remaining points coincide with a centre (or rounding ran
			// past the end); take the first unused point.
			for i := range points {
				if !chosen[i] {
					next = i
					break
				}
			}
		}
		chosen[next] = true
		centroids = append(centroids, clone(points[next]))
	}
	return centroids
}

func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centre := range centroids {
		if d := floats.Distance(p, centre, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// updateCentroids moves each centre to the mean of its points. A centre
// that lost all its points stays where it was.
func updateCentroids(points [][]float64, assign []int, centroids [][]float64) {
	dim := len(centroids[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		floats.Add(sums[assign[i]], p)
		counts[assign[i]]++
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		centroids[c] = sums[c]
	}
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
