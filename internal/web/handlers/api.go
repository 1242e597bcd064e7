package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gp-wales/internal/addrparse"
	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/county"
)

// APIHandler serves county resolution and aggregation.
type APIHandler struct {
	Resolver *county.Resolver
	Analysis *analysis.Service
}

// ResolveResponse is the result of one county resolution.
type ResolveResponse struct {
	Postcode string `json:"postcode"`
	County   string `json:"county"`
	PostTown string `json:"posttown"`
	Resolved string `json:"resolved"`
	Known    bool   `json:"known"`
	Mode     string `json:"mode"`
}

// CountyRow is one authority in the aggregation response.
type CountyRow struct {
	County           string  `json:"county"`
	Practices        int     `json:"practices"`
	Items            int64   `json:"items"`
	MeanHypertension float64 `json:"mean_hyp001"`
	HypertensionN    int     `json:"hyp001_practices"`
}

// CountiesResponse is the per-authority aggregation.
type CountiesResponse struct {
	Counties []CountyRow `json:"counties"`
	Unknown  int         `json:"unknown"`
}

// Resolve maps postcode/county/posttown, or a one-line address, to a
// unitary authority.
func (h *APIHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp := ResolveResponse{
		Postcode: strings.TrimSpace(query.Get("postcode")),
		County:   strings.TrimSpace(query.Get("county")),
		PostTown: strings.TrimSpace(query.Get("posttown")),
		Mode:     h.Resolver.Mode().String(),
	}

	if address := strings.TrimSpace(query.Get("address")); address != "" {
		c := addrparse.Parse(address)
		if resp.Postcode == "" {
			resp.Postcode = c.Postcode
		}
		if resp.County == "" {
			resp.County = c.County
		}
		if resp.PostTown == "" {
			resp.PostTown = c.City
		}
	}

	if resp.Postcode == "" && resp.County == "" && resp.PostTown == "" {
		http.Error(w, "postcode, county, posttown or address required", http.StatusBadRequest)
		return
	}

	c := h.Resolver.Resolve(resp.Postcode, resp.County, resp.PostTown)
	resp.Resolved = c.String()
	resp.Known = !c.IsUnknown()
	writeJSON(w, resp)
}

// Counties returns the per-authority aggregation.
func (h *APIHandler) Counties(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Analysis.CountyAggregation(r.Context())
	if err != nil {
		log.Printf("county aggregation: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	resp := CountiesResponse{Counties: make([]CountyRow, 0, len(rep.Rows)), Unknown: rep.Unknown}
	for _, row := range rep.Rows {
		resp.Counties = append(resp.Counties, CountyRow{
			County:           row.County.String(),
			Practices:        row.Practices,
			Items:            row.Items,
			MeanHypertension: row.MeanHypertension,
			HypertensionN:    row.HypertensionN,
		})
	}
	writeJSON(w, resp)
}

// Authorities lists the 22 canonical authority names and their districts.
func (h *APIHandler) Authorities(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(county.Names()))
	for _, c := range county.Names() {
		out[c.String()] = county.Districts(c)
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// parseIntParam safely parses integer parameters with default values
func parseIntParam(param string, defaultValue int) int {
	if param == "" {
		return defaultValue
	}
	if val, err := strconv.Atoi(param); err == nil {
		return val
	}
	return defaultValue
}
