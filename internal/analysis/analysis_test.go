package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/practice"
	"github.com/gp-wales/internal/stats"
	"github.com/gp-wales/internal/store"
	"github.com/gp-wales/internal/testdb"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{TopDrugs: 3, KMeansK: 2, KMeansSeed: 42, PostcodeMatch: "outward"}
}

func newSeededService(t *testing.T) *Service {
	t.Helper()
	conn := testdb.New(t)
	testdb.Seed(t, conn)
	return New(store.New(conn, false), county.NewResolver(county.MatchOutward), testConfig(), false)
}

func TestTopDrugsHonoursLimit(t *testing.T) {
	svc := newSeededService(t)
	drugs, err := svc.TopDrugs(context.Background(), "W00001")
	if err != nil {
		t.Fatal(err)
	}
	if len(drugs) != 3 {
		t.Fatalf("got %d drugs, want 3", len(drugs))
	}
	if drugs[0].Items < drugs[1].Items || drugs[1].Items < drugs[2].Items {
		t.Errorf("drugs not ordered by items: %+v", drugs)
	}
}

func TestCategories(t *testing.T) {
	svc := newSeededService(t)
	cats, err := svc.Categories(context.Background(), "W00001")
	if err != nil {
		t.Fatal(err)
	}
	if cats[0].Name != "Cardiovascular System" {
		t.Errorf("first category = %q, want Cardiovascular System", cats[0].Name)
	}
	total := 0.0
	for _, c := range cats {
		total += c.Share
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("shares sum to %v, want 100", total)
	}

	_, err = svc.Categories(context.Background(), "X99999")
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("practice without prescribing error = %v, want ErrInsufficientData", err)
	}
}

func TestSize(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	// Row counts are 4, 2, 3, 1, 2 so the median is 2.
	tests := []struct {
		id   string
		want practice.SizeLabel
	}{
		{"W00001", practice.Big},
		{"W00003", practice.Big},
		{"W00002", practice.Small},
		{"W00004", practice.Small},
		{"X99999", practice.Small},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			res, err := svc.Size(ctx, tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if res.Median != 2 {
				t.Errorf("median = %v, want 2", res.Median)
			}
			if res.Label != tt.want {
				t.Errorf("Size(%s) = %s, want %s", tt.id, res.Label, tt.want)
			}
		})
	}
}

func TestRefreshPopulation(t *testing.T) {
	conn := testdb.New(t)
	testdb.Seed(t, conn)
	svc := New(store.New(conn, false), county.NewResolver(county.MatchOutward), testConfig(), false)
	ctx := context.Background()

	before, err := svc.Size(ctx, "W00004")
	if err != nil {
		t.Fatal(err)
	}
	if before.Label != practice.Small {
		t.Fatalf("W00004 before refresh = %s", before.Label)
	}

	for i := 0; i < 5; i++ {
		testdb.Prescriptions(t, conn, testdb.Rx("W00004", "0101010A0AAAAAA", "Extra", 1))
	}
	stale, _ := svc.Size(ctx, "W00004")
	if stale.Count != 1 {
		t.Errorf("count before refresh = %d, want cached 1", stale.Count)
	}

	if err := svc.RefreshPopulation(ctx); err != nil {
		t.Fatal(err)
	}
	after, err := svc.Size(ctx, "W00004")
	if err != nil {
		t.Fatal(err)
	}
	if after.Count != 6 || after.Label != practice.Big {
		t.Errorf("after refresh = %+v, want count 6 Big", after)
	}
}

func TestRates(t *testing.T) {
	svc := newSeededService(t)
	rates, err := svc.Rates(context.Background(), "W00001")
	if err != nil {
		t.Fatal(err)
	}
	if len(rates) != 2 {
		t.Fatalf("got %d rates, want 2", len(rates))
	}
	hyp := rates[0]
	if hyp.Indicator != practice.IndicatorHypertension || !hyp.AboveAverage() {
		t.Errorf("hypertension rate = %+v", hyp)
	}
	if math.Abs(hyp.Difference()-0.03) > 1e-9 {
		t.Errorf("difference = %v, want 0.03", hyp.Difference())
	}
	if ob := rates[1]; ob.AboveAverage() {
		t.Errorf("obesity 0.08 should be below mean 0.10: %+v", ob)
	}
}

func TestCHDCentile(t *testing.T) {
	svc := newSeededService(t)
	res, err := svc.CHDCentile(context.Background(), "W00001")
	if err != nil {
		t.Fatal(err)
	}
	if res.Centile != 75 || res.Population != 4 {
		t.Errorf("CHDCentile() = %+v, want centile 75 of 4", res)
	}

	_, err = svc.CHDCentile(context.Background(), "W00005")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing CHD error = %v, want store.ErrNotFound", err)
	}
}

func TestCountyAggregation(t *testing.T) {
	svc := newSeededService(t)
	report, err := svc.CountyAggregation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", report.Unknown)
	}

	byCounty := make(map[county.County]CountyRow)
	for _, r := range report.Rows {
		byCounty[r.County] = r
	}
	if _, ok := byCounty[county.Unknown]; ok {
		t.Error("Unknown must not appear as a row")
	}

	cardiff := byCounty[county.Cardiff]
	if cardiff.Practices != 2 || cardiff.Items != 570 {
		t.Errorf("Cardiff = %+v, want 2 practices 570 items", cardiff)
	}
	if math.Abs(cardiff.MeanHypertension-0.145) > 1e-9 {
		t.Errorf("Cardiff mean HYP001 = %v, want 0.145", cardiff.MeanHypertension)
	}
	for _, c := range []county.County{county.Caerphilly, county.Torfaen, county.ValeOfGlamorgan} {
		if byCounty[c].Practices != 1 {
			t.Errorf("%s practices = %d, want 1", c, byCounty[c].Practices)
		}
	}
	for i := 1; i < len(report.Rows); i++ {
		if report.Rows[i-1].County > report.Rows[i].County {
			t.Errorf("rows not sorted: %s before %s", report.Rows[i-1].County, report.Rows[i].County)
		}
	}
}

func TestClusters(t *testing.T) {
	svc := newSeededService(t)
	res, err := svc.Clusters(context.Background(), "W00003")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 5 {
		t.Errorf("clustered %d practices, want 5", len(res.Points))
	}
	if res.Selected < 0 || res.Selected >= res.K {
		t.Errorf("Selected = %d, want a cluster in [0,%d)", res.Selected, res.K)
	}
	total := 0
	for _, n := range res.Sizes {
		total += n
	}
	if total != 5 {
		t.Errorf("cluster sizes sum to %d, want 5", total)
	}

	again, err := svc.Clusters(context.Background(), "W00003")
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Points {
		if res.Points[i] != again.Points[i] {
			t.Fatalf("clustering not deterministic at %d", i)
		}
	}

	none, err := svc.Clusters(context.Background(), "X99999")
	if err != nil {
		t.Fatal(err)
	}
	if none.Selected != -1 {
		t.Errorf("practice without data Selected = %d, want -1", none.Selected)
	}
}

func TestClustersInsufficientData(t *testing.T) {
	conn := testdb.New(t)
	testdb.Achievements(t, conn,
		testdb.QOF("W00001", practice.IndicatorHypertension, 0.1),
		testdb.QOF("W00001", practice.IndicatorObesity, 0.1),
	)
	svc := New(store.New(conn, false), county.NewResolver(county.MatchOutward), testConfig(), false)
	_, err := svc.Clusters(context.Background(), "W00001")
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestCorrelation(t *testing.T) {
	svc := newSeededService(t)
	res, err := svc.Correlation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Hypertension.N != 5 || res.Obesity.N != 5 {
		t.Errorf("N = %d/%d, want 5/5", res.Hypertension.N, res.Obesity.N)
	}
	if want := stats.Compare(res.Hypertension.Coefficient, res.Obesity.Coefficient); res.Comparison != want {
		t.Errorf("Comparison = %v, want %v", res.Comparison, want)
	}
	if len(res.Narrative) != 3 {
		t.Errorf("got %d narrative lines, want 3", len(res.Narrative))
	}
}

func TestCorrelationInsufficientData(t *testing.T) {
	conn := testdb.New(t)
	testdb.Prescriptions(t, conn, testdb.Rx("W00001", "0205051R0AAAAAA", "Ramipril_Cap 2.5mg", 10))
	testdb.Achievements(t, conn,
		testdb.QOF("W00001", practice.IndicatorHypertension, 0.1),
		testdb.QOF("W00001", practice.IndicatorObesity, 0.1),
	)
	svc := New(store.New(conn, false), county.NewResolver(county.MatchOutward), testConfig(), false)
	_, err := svc.Correlation(context.Background())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestChapterName(t *testing.T) {
	if got := ChapterName("02"); got != "Cardiovascular System" {
		t.Errorf("ChapterName(02) = %q", got)
	}
	if got := ChapterName("16"); got != "Unclassified" {
		t.Errorf("ChapterName(16) = %q", got)
	}
}
