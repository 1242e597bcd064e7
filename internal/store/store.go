// Package store is the SQL repository over the address, prescribing and QOF
// tables. It returns already-fetched rows; the resolver, classifier and
// interpreter never see a query.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gp-wales/internal/db"
	"github.com/gp-wales/internal/debug"
	"github.com/gp-wales/internal/practice"
)

// ErrNotFound is returned when a practice or indicator row does not exist.
var ErrNotFound = errors.New("not found")

// Store issues read queries against a Connection.
type Store struct {
	conn  *db.Connection
	debug bool
}

// New returns a Store over conn. When localDebug is set every statement is logged.
func New(conn *db.Connection, localDebug bool) *Store {
	return &Store{conn: conn, debug: localDebug}
}

// DrugTotal is the summed item count for one BNF presentation.
type DrugTotal struct {
	BNFCode string
	BNFName string
	Items   int64
}

// ChapterTotal is the summed item count for one two-digit BNF chapter.
type ChapterTotal struct {
	Chapter string
	Items   int64
}

func (s *Store) query(ctx context.Context, q string, args ...interface{}) (*sql.Rows, error) {
	q = s.conn.Rebind(q)
	debug.DebugQuery(s.debug, q, args...)
	return s.conn.DB.QueryContext(ctx, q, args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...interface{}) *sql.Row {
	q = s.conn.Rebind(q)
	debug.DebugQuery(s.debug, q, args...)
	return s.conn.DB.QueryRowContext(ctx, q, args...)
}

const practiceColumns = `practiceid, COALESCE(name, ''), COALESCE(street, ''), COALESCE(area, ''),
	COALESCE(posttown, ''), COALESCE(county, ''), COALESCE(postcode, '')`

func scanPractices(rows *sql.Rows) ([]practice.Practice, error) {
	defer rows.Close()
	var out []practice.Practice
	for rows.Next() {
		var p practice.Practice
		if err := rows.Scan(&p.ID, &p.Name, &p.Street, &p.Area, &p.PostTown, &p.County, &p.Postcode); err != nil {
			return nil, fmt.Errorf("failed to scan practice: %w", err)
		}
		p.ID = strings.TrimSpace(p.ID)
		out = append(out, p)
	}
	return out, rows.Err()
}

// PracticesByPostcode returns the practices registered at a postcode. The
// comparison ignores case and spacing.
func (s *Store) PracticesByPostcode(ctx context.Context, postcode string) ([]practice.Practice, error) {
	key := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	rows, err := s.query(ctx, `SELECT `+practiceColumns+`
		FROM address
		WHERE UPPER(REPLACE(postcode, ' ', '')) = ?
		ORDER BY practiceid`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query practices for %s: %w", postcode, err)
	}
	return scanPractices(rows)
}

// Practice returns one practice by identifier.
func (s *Store) Practice(ctx context.Context, id string) (*practice.Practice, error) {
	var p practice.Practice
	id = strings.TrimSpace(id)
	err := s.queryRow(ctx, `SELECT `+practiceColumns+` FROM address WHERE TRIM(practiceid) = ?`, id).
		Scan(&p.ID, &p.Name, &p.Street, &p.Area, &p.PostTown, &p.County, &p.Postcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("practice %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query practice %s: %w", id, err)
	}
	p.ID = strings.TrimSpace(p.ID)
	return &p, nil
}

// AllPractices returns every practice ordered by identifier.
func (s *Store) AllPractices(ctx context.Context) ([]practice.Practice, error) {
	rows, err := s.query(ctx, `SELECT `+practiceColumns+` FROM address ORDER BY practiceid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query practices: %w", err)
	}
	return scanPractices(rows)
}

// TopDrugs returns the n presentations with the most items for a practice.
func (s *Store) TopDrugs(ctx context.Context, practiceID string, n int) ([]DrugTotal, error) {
	rows, err := s.query(ctx, `
		SELECT bnfcode, COALESCE(MAX(bnfname), ''), COALESCE(SUM(items), 0) AS total
		FROM gp_data_up_to_2015
		WHERE practiceid = ?
		GROUP BY bnfcode
		ORDER BY total DESC, bnfcode
		LIMIT ?`, practiceID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top drugs: %w", err)
	}
	defer rows.Close()

	var out []DrugTotal
	for rows.Next() {
		var d DrugTotal
		if err := rows.Scan(&d.BNFCode, &d.BNFName, &d.Items); err != nil {
			return nil, fmt.Errorf("failed to scan drug total: %w", err)
		}
		d.BNFName = strings.TrimSpace(d.BNFName)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ChapterItems sums a practice's items by BNF chapter, largest first.
func (s *Store) ChapterItems(ctx context.Context, practiceID string) ([]ChapterTotal, error) {
	rows, err := s.query(ctx, `
		SELECT SUBSTR(bnfcode, 1, 2) AS chapter, COALESCE(SUM(items), 0) AS total
		FROM gp_data_up_to_2015
		WHERE practiceid = ?
		GROUP BY SUBSTR(bnfcode, 1, 2)
		ORDER BY total DESC, chapter`, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter items: %w", err)
	}
	defer rows.Close()

	var out []ChapterTotal
	for rows.Next() {
		var c ChapterTotal
		if err := rows.Scan(&c.Chapter, &c.Items); err != nil {
			return nil, fmt.Errorf("failed to scan chapter total: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PrescriptionCounts returns the number of prescribing rows per practice.
func (s *Store) PrescriptionCounts(ctx context.Context) (map[string]int64, error) {
	return s.perPractice(ctx, `SELECT practiceid, COUNT(*) FROM gp_data_up_to_2015 GROUP BY practiceid`)
}

// ItemTotals returns the summed item count per practice.
func (s *Store) ItemTotals(ctx context.Context) (map[string]int64, error) {
	return s.perPractice(ctx, `SELECT practiceid, COALESCE(SUM(items), 0) FROM gp_data_up_to_2015 GROUP BY practiceid`)
}

func (s *Store) perPractice(ctx context.Context, q string) (map[string]int64, error) {
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-practice totals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan per-practice total: %w", err)
		}
		out[strings.TrimSpace(id)] = n
	}
	return out, rows.Err()
}

// Achievement returns a practice's row for one QOF indicator.
func (s *Store) Achievement(ctx context.Context, practiceID, indicator string) (*practice.AchievementRecord, error) {
	var (
		rec        practice.AchievementRecord
		num, denom sql.NullFloat64
		ratio, cen sql.NullFloat64
	)
	err := s.queryRow(ctx, `
		SELECT orgcode, indicator, numerator, denominator, ratio, centile
		FROM qof_achievement
		WHERE orgcode = ? AND indicator = ?`, practiceID, indicator).
		Scan(&rec.OrgCode, &rec.Indicator, &num, &denom, &ratio, &cen)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !ratio.Valid) {
		return nil, fmt.Errorf("%s for practice %s: %w", indicator, practiceID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for practice %s: %w", indicator, practiceID, err)
	}
	rec.Numerator = num.Float64
	rec.Denominator = denom.Float64
	rec.Ratio = ratio.Float64
	rec.Centile = cen.Float64
	return &rec, nil
}

// IndicatorRatio returns a practice's ratio for one QOF indicator.
func (s *Store) IndicatorRatio(ctx context.Context, practiceID, indicator string) (float64, error) {
	rec, err := s.Achievement(ctx, practiceID, indicator)
	if err != nil {
		return 0, err
	}
	return rec.Ratio, nil
}

// IndicatorRatios returns every practice's non-null ratio for an indicator.
func (s *Store) IndicatorRatios(ctx context.Context, indicator string) (map[string]float64, error) {
	rows, err := s.query(ctx, `
		SELECT orgcode, ratio
		FROM qof_achievement
		WHERE indicator = ? AND ratio IS NOT NULL`, indicator)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s ratios: %w", indicator, err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var ratio float64
		if err := rows.Scan(&id, &ratio); err != nil {
			return nil, fmt.Errorf("failed to scan %s ratio: %w", indicator, err)
		}
		out[strings.TrimSpace(id)] = ratio
	}
	return out, rows.Err()
}

// IndicatorMean is the all-Wales mean ratio for an indicator.
func (s *Store) IndicatorMean(ctx context.Context, indicator string) (float64, error) {
	var mean sql.NullFloat64
	err := s.queryRow(ctx, `SELECT AVG(ratio) FROM qof_achievement WHERE indicator = ?`, indicator).Scan(&mean)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s mean: %w", indicator, err)
	}
	if !mean.Valid {
		return 0, fmt.Errorf("%s mean: %w", indicator, ErrNotFound)
	}
	return mean.Float64, nil
}

// SectionShare returns, per practice, the fraction of items whose BNF code
// starts with bnfPrefix. Practices with no items are omitted.
func (s *Store) SectionShare(ctx context.Context, bnfPrefix string) (map[string]float64, error) {
	rows, err := s.query(ctx, `
		SELECT practiceid,
			COALESCE(SUM(CASE WHEN bnfcode LIKE ? THEN items ELSE 0 END), 0),
			COALESCE(SUM(items), 0)
		FROM gp_data_up_to_2015
		GROUP BY practiceid`, bnfPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query BNF %s share: %w", bnfPrefix, err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var section, total int64
		if err := rows.Scan(&id, &section, &total); err != nil {
			return nil, fmt.Errorf("failed to scan BNF share: %w", err)
		}
		if total == 0 {
			continue
		}
		out[strings.TrimSpace(id)] = float64(section) / float64(total)
	}
	return out, rows.Err()
}
