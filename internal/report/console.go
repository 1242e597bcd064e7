// Package report renders analysis results as console tables, PNG charts
// and spreadsheet exports.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/practice"
	"github.com/gp-wales/internal/stats"
	"github.com/gp-wales/internal/store"
)

var (
	heading = color.New(color.FgYellow)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

// Printer writes results to a terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) table(header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(p.out)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	return t
}

// Heading prints a section title.
func (p *Printer) Heading(format string, args ...interface{}) {
	heading.Fprintf(p.out, "\n"+format+"\n", args...)
}

// Error prints a failure in red.
func (p *Printer) Error(err error) {
	bad.Fprintf(p.out, "Error: %v\n", err)
}

// Practices lists candidate practices for selection, numbered from 1.
func (p *Printer) Practices(ps []practice.Practice) {
	t := p.table([]string{"#", "Practice", "Name", "Address", "Post Town", "Postcode"})
	for i, pr := range ps {
		t.Append([]string{strconv.Itoa(i + 1), pr.ID, pr.Name, pr.Street, pr.PostTown, pr.Postcode})
	}
	t.Render()
}

// TopDrugs prints the most prescribed presentations.
func (p *Printer) TopDrugs(practiceID string, drugs []store.DrugTotal) {
	p.Heading("Top %d drugs for %s", len(drugs), practiceID)
	t := p.table([]string{"Rank", "BNF Code", "Drug", "Items"})
	for i, d := range drugs {
		t.Append([]string{strconv.Itoa(i + 1), d.BNFCode, d.BNFName, strconv.FormatInt(d.Items, 10)})
	}
	t.Render()
}

// Categories prints items by BNF chapter.
func (p *Printer) Categories(practiceID string, cats []analysis.Category) {
	p.Heading("Prescribing by BNF chapter for %s", practiceID)
	t := p.table([]string{"Chapter", "Name", "Items", "Share"})
	for _, c := range cats {
		t.Append([]string{c.Chapter, c.Name, strconv.FormatInt(c.Items, 10), fmt.Sprintf("%.1f%%", c.Share)})
	}
	t.Render()
}

// Size prints a size classification.
func (p *Printer) Size(res *analysis.SizeResult) {
	p.Heading("Practice size for %s", res.PracticeID)
	fmt.Fprintf(p.out, "Prescription rows: %d (median across %d practices: %.1f)\n",
		res.Count, res.Population, res.Median)
	c := bad
	if res.Label == practice.Big {
		c = good
	}
	c.Fprintf(p.out, "Classification: %s\n", res.Label)
}

// Rates prints indicator ratios against the Wales mean.
func (p *Printer) Rates(practiceID string, rates []analysis.IndicatorRate) {
	p.Heading("Disease rates for %s", practiceID)
	t := p.table([]string{"Indicator", "Practice", "Wales Mean", "Difference", "Compared"})
	for _, r := range rates {
		rel := "below average"
		if r.AboveAverage() {
			rel = "above average"
		}
		t.Append([]string{
			r.Indicator,
			fmt.Sprintf("%.4f", r.Practice),
			fmt.Sprintf("%.4f", r.WalesMean),
			fmt.Sprintf("%+.4f", r.Difference()),
			rel,
		})
	}
	t.Render()
}

// Centile prints a practice's position in the indicator distribution.
func (p *Printer) Centile(practiceID string, res *analysis.CentileResult) {
	p.Heading("%s centile for %s", res.Indicator, practiceID)
	fmt.Fprintf(p.out, "Ratio %.4f is at the %.1f centile of %d practices.\n",
		res.Ratio, res.Centile, res.Population)
}

// Counties prints the per-authority aggregation.
func (p *Printer) Counties(rep *analysis.CountyReport) {
	p.Heading("Practices by unitary authority")
	t := p.table([]string{"Authority", "Practices", "Items", "Mean HYP001"})
	total := 0
	for _, r := range rep.Rows {
		total += r.Practices
		mean := "-"
		if r.HypertensionN > 0 {
			mean = fmt.Sprintf("%.4f", r.MeanHypertension)
		}
		t.Append([]string{r.County.String(), strconv.Itoa(r.Practices), strconv.FormatInt(r.Items, 10), mean})
	}
	t.SetFooter([]string{"Total", strconv.Itoa(total), "", ""})
	t.Render()
	if rep.Unknown > 0 {
		bad.Fprintf(p.out, "%d practices could not be assigned to an authority\n", rep.Unknown)
	}
}

// Clusters prints cluster centroids and the selected practice's cluster.
func (p *Printer) Clusters(practiceID string, res *analysis.ClusterResult) {
	p.Heading("K-means clusters (k=%d, %d iterations)", res.K, res.Iterations)
	t := p.table([]string{"Cluster", "Practices", "Mean HYP001", "Mean OB001W"})
	for c := range res.Centroids {
		label := strconv.Itoa(c + 1)
		if c == res.Selected {
			label += " *"
		}
		t.Append([]string{
			label,
			strconv.Itoa(res.Sizes[c]),
			fmt.Sprintf("%.4f", res.Centroids[c][0]),
			fmt.Sprintf("%.4f", res.Centroids[c][1]),
		})
	}
	t.Render()
	if res.Selected >= 0 {
		fmt.Fprintf(p.out, "%s is in cluster %d.\n", practiceID, res.Selected+1)
	} else {
		fmt.Fprintf(p.out, "%s has no HYP001/OB001W data and was not clustered.\n", practiceID)
	}
}

// Correlation prints the two correlations and their narration.
func (p *Printer) Correlation(res *analysis.CorrelationResult) {
	p.Heading("Antihypertensive prescribing (BNF %s) correlation", res.Section)
	t := p.table([]string{"Against", "Kendall tau", "p-value", "N", "Strength", "Significance"})
	for _, row := range []struct {
		name string
		c    stats.Correlation
	}{
		{"HYP001", res.Hypertension},
		{"OB001W", res.Obesity},
	} {
		s, sig := stats.Interpret(row.c.Coefficient, row.c.PValue)
		t.Append([]string{
			row.name,
			fmt.Sprintf("%.4f", row.c.Coefficient),
			fmt.Sprintf("%.4f", row.c.PValue),
			strconv.Itoa(row.c.N),
			string(s),
			string(sig),
		})
	}
	t.Render()
	for _, line := range res.Narrative {
		fmt.Fprintln(p.out, line)
	}
}

// Chart reports where a chart was written.
func (p *Printer) Chart(path string) {
	if path == "" {
		return
	}
	good.Fprintf(p.out, "Chart saved to %s\n", path)
}
