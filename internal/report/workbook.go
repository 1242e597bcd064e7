package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gp-wales/internal/analysis"
)

const countySheet = "Authorities"

// WriteCountyWorkbook saves the county aggregation as an .xlsx file.
func WriteCountyWorkbook(path string, rep *analysis.CountyReport) error {
	f, err := CountyWorkbook(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// CountyWorkbook builds the county aggregation workbook in memory. The
// caller closes it.
func CountyWorkbook(rep *analysis.CountyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", countySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := fillCountySheet(f, rep); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// setRow writes values left to right from column A of row.
func setRow(f *excelize.File, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(countySheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}
	return nil
}

func fillCountySheet(f *excelize.File, rep *analysis.CountyReport) error {
	if err := setRow(f, 1, "Authority", "Practices", "Items", "Mean HYP001", "HYP001 Practices"); err != nil {
		return err
	}
	if err := f.SetColWidth(countySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(countySheet, "B", "E", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, r := range rep.Rows {
		if err := setRow(f, i+2, r.County.String(), r.Practices, r.Items, r.MeanHypertension, r.HypertensionN); err != nil {
			return err
		}
	}

	return setRow(f, len(rep.Rows)+3, "Unassigned practices", rep.Unknown)
}
