// Package menu is the interactive postcode, practice and analysis loop.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/debug"
	"github.com/gp-wales/internal/normalize"
	"github.com/gp-wales/internal/practice"
	"github.com/gp-wales/internal/report"
	"github.com/gp-wales/internal/store"
)

// Action tells the loop what to do after a handler returns.
type Action int

const (
	Continue Action = iota
	ChangePractice
	Exit
)

// ErrInputClosed is returned when the input stream ends.
var ErrInputClosed = errors.New("input closed")

// PracticeFinder looks up practices by postcode.
type PracticeFinder interface {
	PracticesByPostcode(ctx context.Context, postcode string) ([]practice.Practice, error)
}

// Menu drives one interactive session.
type Menu struct {
	lines   <-chan string
	done    chan struct{}
	stop    sync.Once
	out     io.Writer
	printer *report.Printer
	charts  *report.Charts
	finder  PracticeFinder
	svc     *analysis.Service
	debug   bool
}

// New creates a menu reading from in and writing to out.
func New(in io.Reader, out io.Writer, finder PracticeFinder, svc *analysis.Service, charts *report.Charts, localDebug bool) *Menu {
	done := make(chan struct{})
	return &Menu{
		lines:   readLines(in, done),
		done:    done,
		out:     out,
		printer: report.NewPrinter(out),
		charts:  charts,
		finder:  finder,
		svc:     svc,
		debug:   localDebug,
	}
}

// readLines feeds input lines to a channel so prompts can also wait on ctx.
// The reader stops once done is closed and its pending line is dropped.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// Run loops until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	defer m.stop.Do(func() { close(m.done) })
	for {
		p, err := m.selectPractice(ctx)
		if err != nil {
			return m.finish(err)
		}

		action, err := m.analysisLoop(ctx, p)
		if err != nil {
			return m.finish(err)
		}
		if action == Exit {
			color.New(color.FgGreen).Fprintln(m.out, "Goodbye.")
			return nil
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		color.New(color.FgYellow).Fprintln(m.out, "\nShutting down gracefully...")
		return nil
	}
	return err
}

// selectPractice prompts for a postcode until it finds practices, then for a
// choice among them.
func (m *Menu) selectPractice(ctx context.Context) (*practice.Practice, error) {
	for {
		raw, err := m.prompt(ctx, "\nEnter a practice postcode: ")
		if err != nil {
			return nil, err
		}
		if !normalize.IsPostcode(raw) {
			m.printer.Error(fmt.Errorf("%q is not a valid postcode", raw))
			continue
		}
		pc := normalize.Postcode(raw)
		debug.DebugOutput(m.debug, "postcode %q normalised to %q", raw, pc)

		ps, err := m.finder.PracticesByPostcode(ctx, pc)
		if err != nil {
			return nil, err
		}
		if len(ps) == 0 {
			m.printer.Error(fmt.Errorf("no practices found at %s", pc))
			continue
		}
		if len(ps) == 1 {
			fmt.Fprintf(m.out, "Selected %s %s\n", ps[0].ID, ps[0].Name)
			return &ps[0], nil
		}

		m.printer.Practices(ps)
		for {
			choice, err := m.prompt(ctx, fmt.Sprintf("Choose a practice (1-%d): ", len(ps)))
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(ps) {
				m.printer.Error(fmt.Errorf("invalid choice %q", choice))
				continue
			}
			return &ps[n-1], nil
		}
	}
}

func (m *Menu) displayMenu(p *practice.Practice) {
	color.New(color.FgCyan).Fprintf(m.out, "\n=== %s %s ===\n", p.ID, p.Name)
	fmt.Fprintln(m.out, "1. Top prescribed drugs")
	fmt.Fprintln(m.out, "2. Prescribing by BNF chapter")
	fmt.Fprintln(m.out, "3. Practice size")
	fmt.Fprintln(m.out, "4. Hypertension and obesity rates")
	fmt.Fprintln(m.out, "5. CHD centile")
	fmt.Fprintln(m.out, "6. Practices by unitary authority")
	fmt.Fprintln(m.out, "7. Hypertension/obesity clusters")
	fmt.Fprintln(m.out, "8. Antihypertensive prescribing correlation")
	fmt.Fprintln(m.out, "9. Change practice")
	fmt.Fprintln(m.out, "0. Exit")
}

func (m *Menu) analysisLoop(ctx context.Context, p *practice.Practice) (Action, error) {
	for {
		m.displayMenu(p)
		choice, err := m.prompt(ctx, "\nEnter your choice (0-9): ")
		if err != nil {
			return Exit, err
		}

		action, err := m.handleMenuChoice(ctx, p, choice)
		if err != nil {
			if ctx.Err() != nil {
				return Exit, ctx.Err()
			}
			m.reportError(err)
		}
		if action != Continue {
			return action, nil
		}
	}
}

func (m *Menu) reportError(err error) {
	switch {
	case errors.Is(err, analysis.ErrInsufficientData):
		color.New(color.FgYellow).Fprintf(m.out, "Insufficient data: %v\n", err)
	case errors.Is(err, store.ErrNotFound):
		color.New(color.FgYellow).Fprintf(m.out, "No data: %v\n", err)
	default:
		m.printer.Error(err)
	}
}

func (m *Menu) handleMenuChoice(ctx context.Context, p *practice.Practice, choice string) (Action, error) {
	switch choice {
	case "1":
		return m.showTopDrugs(ctx, p)
	case "2":
		return m.showCategories(ctx, p)
	case "3":
		return m.showSize(ctx, p)
	case "4":
		return m.showRates(ctx, p)
	case "5":
		return m.showCentile(ctx, p)
	case "6":
		return m.showCounties(ctx)
	case "7":
		return m.showClusters(ctx, p)
	case "8":
		return m.showCorrelation(ctx)
	case "9":
		return ChangePractice, nil
	case "0":
		return Exit, nil
	default:
		return Continue, fmt.Errorf("invalid choice %q", choice)
	}
}
