package handlers

import (
	"log"
	"net/http"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/report"
)

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	Analysis *analysis.Service
}

// Counties streams the county aggregation as an .xlsx workbook.
func (h *ExportHandler) Counties(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Analysis.CountyAggregation(r.Context())
	if err != nil {
		log.Printf("county aggregation: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	f, err := report.CountyWorkbook(rep)
	if err != nil {
		log.Printf("county workbook: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="counties.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("write workbook: %v", err)
	}
}
