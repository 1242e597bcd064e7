package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/store"
)

var clusterColors = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// Charts writes PNG charts into a per-session directory. A disabled
// Charts is a no-op and every method returns an empty path.
type Charts struct {
	enabled bool
	dir     string
}

// NewCharts prepares CHART_DIR/<session-id>. Nothing is created when charts
// are disabled.
func NewCharts(cfg config.ChartConfig) (*Charts, error) {
	if !cfg.Enabled {
		return &Charts{}, nil
	}
	dir := filepath.Join(cfg.Dir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &Charts{enabled: true, dir: dir}, nil
}

// Dir is the session directory, empty when disabled.
func (c *Charts) Dir() string {
	return c.dir
}

func (c *Charts) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := filepath.Join(c.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("failed to save chart %s: %w", name, err)
	}
	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func bar(p *plot.Plot, labels []string, values plotter.Values) error {
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return nil
}

// TopDrugs draws a bar chart of items per drug.
func (c *Charts) TopDrugs(practiceID string, drugs []store.DrugTotal) (string, error) {
	if !c.enabled || len(drugs) == 0 {
		return "", nil
	}
	p := newPlot("Top drugs for "+practiceID, "", "Items")
	labels := make([]string, len(drugs))
	values := make(plotter.Values, len(drugs))
	for i, d := range drugs {
		labels[i] = shorten(d.BNFName, 24)
		values[i] = float64(d.Items)
	}
	if err := bar(p, labels, values); err != nil {
		return "", err
	}
	return c.save(p, "top_drugs_"+practiceID+".png", 10*vg.Inch, 6*vg.Inch)
}

// Categories draws a bar chart of items per BNF chapter.
func (c *Charts) Categories(practiceID string, cats []analysis.Category) (string, error) {
	if !c.enabled || len(cats) == 0 {
		return "", nil
	}
	p := newPlot("BNF chapters for "+practiceID, "", "Share of items (%)")
	labels := make([]string, len(cats))
	values := make(plotter.Values, len(cats))
	for i, cat := range cats {
		labels[i] = shorten(cat.Name, 24)
		values[i] = cat.Share
	}
	if err := bar(p, labels, values); err != nil {
		return "", err
	}
	return c.save(p, "categories_"+practiceID+".png", 10*vg.Inch, 6*vg.Inch)
}

// Counties draws practices per authority.
func (c *Charts) Counties(rep *analysis.CountyReport) (string, error) {
	if !c.enabled || len(rep.Rows) == 0 {
		return "", nil
	}
	p := newPlot("Practices by unitary authority", "", "Practices")
	labels := make([]string, len(rep.Rows))
	values := make(plotter.Values, len(rep.Rows))
	for i, r := range rep.Rows {
		labels[i] = r.County.String()
		values[i] = float64(r.Practices)
	}
	if err := bar(p, labels, values); err != nil {
		return "", err
	}
	return c.save(p, "counties.png", 12*vg.Inch, 7*vg.Inch)
}

// Clusters draws a scatter of HYP001 against OB001W, one colour per cluster,
// with the selected practice ringed.
func (c *Charts) Clusters(practiceID string, res *analysis.ClusterResult) (string, error) {
	if !c.enabled || len(res.Points) == 0 {
		return "", nil
	}
	p := newPlot("Practice clusters", "HYP001 ratio", "OB001W ratio")
	p.Add(plotter.NewGrid())

	byCluster := make([]plotter.XYs, res.K)
	var selected plotter.XYs
	for _, pt := range res.Points {
		xy := plotter.XY{X: pt.Hypertension, Y: pt.Obesity}
		byCluster[pt.Cluster] = append(byCluster[pt.Cluster], xy)
		if pt.PracticeID == practiceID {
			selected = append(selected, xy)
		}
	}
	for k, xys := range byCluster {
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return "", fmt.Errorf("failed to build scatter: %w", err)
		}
		s.GlyphStyle.Color = clusterColors[k%len(clusterColors)]
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("Cluster %d", k+1), s)
	}
	if len(selected) > 0 {
		s, err := plotter.NewScatter(selected)
		if err != nil {
			return "", fmt.Errorf("failed to build scatter: %w", err)
		}
		s.GlyphStyle.Color = color.Black
		s.GlyphStyle.Radius = vg.Points(7)
		s.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(s)
		p.Legend.Add(practiceID, s)
	}
	return c.save(p, "clusters.png", 8*vg.Inch, 8*vg.Inch)
}

func shorten(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
