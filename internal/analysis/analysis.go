// Package analysis implements the menu operations on top of the store and
// the county, size and correlation units.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/debug"
	"github.com/gp-wales/internal/practice"
	"github.com/gp-wales/internal/stats"
	"github.com/gp-wales/internal/store"
)

// ErrInsufficientData is returned when an analysis has too few observations.
var ErrInsufficientData = errors.New("insufficient data")

// Source is the subset of the store the analyses read.
type Source interface {
	AllPractices(ctx context.Context) ([]practice.Practice, error)
	TopDrugs(ctx context.Context, practiceID string, n int) ([]store.DrugTotal, error)
	ChapterItems(ctx context.Context, practiceID string) ([]store.ChapterTotal, error)
	PrescriptionCounts(ctx context.Context) (map[string]int64, error)
	ItemTotals(ctx context.Context) (map[string]int64, error)
	IndicatorRatio(ctx context.Context, practiceID, indicator string) (float64, error)
	IndicatorRatios(ctx context.Context, indicator string) (map[string]float64, error)
	IndicatorMean(ctx context.Context, indicator string) (float64, error)
	SectionShare(ctx context.Context, bnfPrefix string) (map[string]float64, error)
}

// Service runs analyses. It is safe for concurrent use.
type Service struct {
	src      Source
	resolver *county.Resolver
	cfg      config.AnalysisConfig
	debug    bool

	mu  sync.Mutex
	pop *practice.Population
}

// New creates a Service.
func New(src Source, resolver *county.Resolver, cfg config.AnalysisConfig, localDebug bool) *Service {
	return &Service{src: src, resolver: resolver, cfg: cfg, debug: localDebug}
}

// Resolver returns the county resolver used for aggregation.
func (s *Service) Resolver() *county.Resolver {
	return s.resolver
}

// TopDrugs returns the practice's most prescribed presentations by items.
func (s *Service) TopDrugs(ctx context.Context, practiceID string) ([]store.DrugTotal, error) {
	defer debug.DebugTiming(s.debug, "top drugs")()
	return s.src.TopDrugs(ctx, practiceID, s.cfg.TopDrugs)
}

// Category is one BNF chapter's share of a practice's items.
type Category struct {
	Chapter string
	Name    string
	Items   int64
	Share   float64 // percentage of the practice's items
}

// Categories breaks a practice's items down by BNF chapter.
func (s *Service) Categories(ctx context.Context, practiceID string) ([]Category, error) {
	defer debug.DebugTiming(s.debug, "categories")()
	chapters, err := s.src.ChapterItems(ctx, practiceID)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, c := range chapters {
		total += c.Items
	}
	if total == 0 {
		return nil, fmt.Errorf("no prescribing for practice %s: %w", practiceID, ErrInsufficientData)
	}

	out := make([]Category, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, Category{
			Chapter: c.Chapter,
			Name:    ChapterName(c.Chapter),
			Items:   c.Items,
			Share:   100 * float64(c.Items) / float64(total),
		})
	}
	return out, nil
}

// SizeResult is a practice's size classification.
type SizeResult struct {
	PracticeID string
	Count      int64
	Median     float64
	Label      practice.SizeLabel
	Population int
}

// population returns the cached snapshot, loading it on first use.
func (s *Service) population(ctx context.Context) (*practice.Population, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pop != nil {
		return s.pop, nil
	}
	counts, err := s.src.PrescriptionCounts(ctx)
	if err != nil {
		return nil, err
	}
	s.pop = practice.NewPopulation(counts)
	debug.DebugOutput(s.debug, "population loaded: %d practices, median %.1f", s.pop.Size(), s.pop.Median())
	return s.pop, nil
}

// RefreshPopulation reloads prescription counts and replaces the size snapshot.
func (s *Service) RefreshPopulation(ctx context.Context) error {
	counts, err := s.src.PrescriptionCounts(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.pop == nil {
		s.pop = practice.NewPopulation(counts)
	} else {
		s.pop = s.pop.Refresh(counts)
	}
	s.mu.Unlock()
	return nil
}

// Size classifies a practice as Big or Small against the population median.
func (s *Service) Size(ctx context.Context, practiceID string) (*SizeResult, error) {
	pop, err := s.population(ctx)
	if err != nil {
		return nil, err
	}
	return &SizeResult{
		PracticeID: practiceID,
		Count:      pop.Count(practiceID),
		Median:     pop.Median(),
		Label:      pop.Classify(practiceID),
		Population: pop.Size(),
	}, nil
}

// IndicatorRate compares one practice's QOF ratio with the Wales mean.
type IndicatorRate struct {
	Indicator string
	Practice  float64
	WalesMean float64
}

// Difference is the practice ratio minus the Wales mean.
func (r IndicatorRate) Difference() float64 {
	return r.Practice - r.WalesMean
}

// AboveAverage reports whether the practice exceeds the Wales mean.
func (r IndicatorRate) AboveAverage() bool {
	return r.Practice > r.WalesMean
}

// Rates returns hypertension and obesity rates against the Wales mean.
func (s *Service) Rates(ctx context.Context, practiceID string) ([]IndicatorRate, error) {
	defer debug.DebugTiming(s.debug, "rates")()
	var out []IndicatorRate
	for _, ind := range []string{practice.IndicatorHypertension, practice.IndicatorObesity} {
		r, err := s.rate(ctx, practiceID, ind)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) rate(ctx context.Context, practiceID, indicator string) (IndicatorRate, error) {
	ratio, err := s.src.IndicatorRatio(ctx, practiceID, indicator)
	if err != nil {
		return IndicatorRate{}, err
	}
	mean, err := s.src.IndicatorMean(ctx, indicator)
	if err != nil {
		return IndicatorRate{}, err
	}
	return IndicatorRate{Indicator: indicator, Practice: ratio, WalesMean: mean}, nil
}

// CentileResult places a practice in the all-Wales distribution of an indicator.
type CentileResult struct {
	Indicator  string
	Ratio      float64
	Centile    float64
	Population int
}

// CHDCentile returns the practice's coronary heart disease centile.
func (s *Service) CHDCentile(ctx context.Context, practiceID string) (*CentileResult, error) {
	ratio, err := s.src.IndicatorRatio(ctx, practiceID, practice.IndicatorCHD)
	if err != nil {
		return nil, err
	}
	all, err := s.src.IndicatorRatios(ctx, practice.IndicatorCHD)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(all))
	for _, v := range all {
		values = append(values, v)
	}
	return &CentileResult{
		Indicator:  practice.IndicatorCHD,
		Ratio:      ratio,
		Centile:    stats.Centile(values, ratio),
		Population: len(values),
	}, nil
}

// CountyRow aggregates the practices resolved to one authority.
type CountyRow struct {
	County           county.County
	Practices        int
	Items            int64
	MeanHypertension float64
	HypertensionN    int
}

// CountyReport is the per-authority aggregation. Practices whose county
// could not be resolved are counted in Unknown and left out of Rows.
type CountyReport struct {
	Rows    []CountyRow
	Unknown int
}

// CountyAggregation resolves every practice to an authority and sums
// practices, items and mean hypertension ratio per authority.
func (s *Service) CountyAggregation(ctx context.Context) (*CountyReport, error) {
	defer debug.DebugTiming(s.debug, "county aggregation")()
	practices, err := s.src.AllPractices(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.src.ItemTotals(ctx)
	if err != nil {
		return nil, err
	}
	hyp, err := s.src.IndicatorRatios(ctx, practice.IndicatorHypertension)
	if err != nil {
		return nil, err
	}

	report := &CountyReport{}
	rows := make(map[county.County]*CountyRow)
	sums := make(map[county.County]float64)
	for _, p := range practices {
		c := s.resolver.Resolve(p.Postcode, p.County, p.PostTown)
		if c.IsUnknown() {
			debug.DebugOutput(s.debug, "unresolved county for %s (%q, %q, %q)", p.ID, p.Postcode, p.County, p.PostTown)
			report.Unknown++
			continue
		}
		row, ok := rows[c]
		if !ok {
			row = &CountyRow{County: c}
			rows[c] = row
		}
		row.Practices++
		row.Items += items[p.ID]
		if r, ok := hyp[p.ID]; ok {
			sums[c] += r
			row.HypertensionN++
		}
	}

	for c, row := range rows {
		if row.HypertensionN > 0 {
			row.MeanHypertension = sums[c] / float64(row.HypertensionN)
		}
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].County < report.Rows[j].County
	})
	return report, nil
}

// ClusterPoint is one practice in the clustering.
type ClusterPoint struct {
	PracticeID   string
	Hypertension float64
	Obesity      float64
	Cluster      int
}

// ClusterResult is a k-means grouping of practices by hypertension and
// obesity ratios. Centroids are in ratio units.
type ClusterResult struct {
	K          int
	Points     []ClusterPoint
	Centroids  [][2]float64
	Sizes      []int
	Iterations int
	Selected   int // cluster of the selected practice, -1 if it has no data
}

// Clusters groups practices on z-scored HYP001 and OB001W ratios.
func (s *Service) Clusters(ctx context.Context, practiceID string) (*ClusterResult, error) {
	defer debug.DebugTiming(s.debug, "clusters")()
	hyp, err := s.src.IndicatorRatios(ctx, practice.IndicatorHypertension)
	if err != nil {
		return nil, err
	}
	ob, err := s.src.IndicatorRatios(ctx, practice.IndicatorObesity)
	if err != nil {
		return nil, err
	}

	ids, hs, obs := paired(hyp, ob)
	if len(ids) < s.cfg.KMeansK || len(ids) < 2 {
		return nil, fmt.Errorf("%d practices with both indicators for k=%d: %w", len(ids), s.cfg.KMeansK, ErrInsufficientData)
	}

	zh, zo := stats.ZScores(hs), stats.ZScores(obs)
	points := make([][]float64, len(ids))
	for i := range ids {
		points[i] = []float64{zh[i], zo[i]}
	}
	km, err := stats.KMeans(points, s.cfg.KMeansK, s.cfg.KMeansSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster practices: %w", err)
	}

	res := &ClusterResult{
		K:          s.cfg.KMeansK,
		Points:     make([]ClusterPoint, len(ids)),
		Centroids:  make([][2]float64, s.cfg.KMeansK),
		Sizes:      km.Sizes,
		Iterations: km.Iterations,
		Selected:   -1,
	}
	for i, id := range ids {
		c := km.Assignments[i]
		res.Points[i] = ClusterPoint{PracticeID: id, Hypertension: hs[i], Obesity: obs[i], Cluster: c}
		res.Centroids[c][0] += hs[i]
		res.Centroids[c][1] += obs[i]
		if id == practiceID {
			res.Selected = c
		}
	}
	for c, n := range km.Sizes {
		if n > 0 {
			res.Centroids[c][0] /= float64(n)
			res.Centroids[c][1] /= float64(n)
		}
	}
	return res, nil
}

// CorrelationResult relates antihypertensive prescribing to two indicators.
type CorrelationResult struct {
	Section      string
	Hypertension stats.Correlation
	Obesity      stats.Correlation
	Comparison   stats.Comparison
	Narrative    []string
}

// Correlation computes Kendall's tau between each practice's share of
// antihypertensive items and its HYP001 and OB001W ratios.
func (s *Service) Correlation(ctx context.Context) (*CorrelationResult, error) {
	defer debug.DebugTiming(s.debug, "correlation")()
	share, err := s.src.SectionShare(ctx, AntihypertensiveSection)
	if err != nil {
		return nil, err
	}

	res := &CorrelationResult{Section: AntihypertensiveSection}
	for _, target := range []struct {
		indicator string
		out       *stats.Correlation
	}{
		{practice.IndicatorHypertension, &res.Hypertension},
		{practice.IndicatorObesity, &res.Obesity},
	} {
		ratios, err := s.src.IndicatorRatios(ctx, target.indicator)
		if err != nil {
			return nil, err
		}
		_, xs, ys := paired(share, ratios)
		if len(xs) < 2 {
			return nil, fmt.Errorf("%d paired observations for %s: %w", len(xs), target.indicator, ErrInsufficientData)
		}
		c, err := stats.KendallTau(xs, ys)
		if err != nil {
			if errors.Is(err, stats.ErrConstantSeries) {
				return nil, fmt.Errorf("%s: %v: %w", target.indicator, err, ErrInsufficientData)
			}
			return nil, err
		}
		*target.out = c
	}

	res.Comparison = stats.Compare(res.Hypertension.Coefficient, res.Obesity.Coefficient)
	res.Narrative = []string{
		stats.Describe(res.Hypertension, "antihypertensive prescribing", "hypertension prevalence"),
		stats.Describe(res.Obesity, "antihypertensive prescribing", "obesity prevalence"),
		stats.DescribeComparison(res.Hypertension, res.Obesity, "hypertension", "obesity"),
	}
	return res, nil
}

// paired joins two per-practice maps on practice id, in id order.
func paired(a, b map[string]float64) (ids []string, xs, ys []float64) {
	for id := range a {
		if _, ok := b[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	xs = make([]float64, len(ids))
	ys = make([]float64, len(ids))
	for i, id := range ids {
		xs[i], ys[i] = a[id], b[id]
	}
	return ids, xs, ys
}
