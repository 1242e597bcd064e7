package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/normalize"
	"github.com/gp-wales/internal/practice"
	"github.com/gp-wales/internal/store"
)

// PracticeStore is what the practice endpoints read.
type PracticeStore interface {
	PracticesByPostcode(ctx context.Context, postcode string) ([]practice.Practice, error)
	Practice(ctx context.Context, id string) (*practice.Practice, error)
	TopDrugs(ctx context.Context, practiceID string, n int) ([]store.DrugTotal, error)
}

// PracticesHandler serves practice lookups.
type PracticesHandler struct {
	Store    PracticeStore
	Analysis *analysis.Service
	Resolver *county.Resolver
}

// PracticeResponse is a practice with its resolved authority.
type PracticeResponse struct {
	practice.Practice
	Authority string `json:"authority"`
}

// SizeResponse is a practice's size classification.
type SizeResponse struct {
	PracticeID string  `json:"practice_id"`
	Count      int64   `json:"prescription_rows"`
	Median     float64 `json:"median"`
	Label      string  `json:"size"`
	Population int     `json:"population"`
}

// DrugResponse is one row of a practice's top drugs.
type DrugResponse struct {
	BNFCode string `json:"bnf_code"`
	BNFName string `json:"bnf_name"`
	Items   int64  `json:"items"`
}

func (h *PracticesHandler) withAuthority(p practice.Practice) PracticeResponse {
	return PracticeResponse{
		Practice:  p,
		Authority: h.Resolver.Resolve(p.Postcode, p.County, p.PostTown).String(),
	}
}

// List returns the practices at ?postcode=.
func (h *PracticesHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("postcode")
	if !normalize.IsPostcode(raw) {
		http.Error(w, "valid postcode required", http.StatusBadRequest)
		return
	}

	ps, err := h.Store.PracticesByPostcode(r.Context(), normalize.Postcode(raw))
	if err != nil {
		log.Printf("practices by postcode: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]PracticeResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, h.withAuthority(p))
	}
	writeJSON(w, out)
}

// lookup loads the practice named by the {id} route variable, writing the
// error response itself when it cannot.
func (h *PracticesHandler) lookup(w http.ResponseWriter, r *http.Request) (*practice.Practice, bool) {
	id := mux.Vars(r)["id"]
	p, err := h.Store.Practice(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Practice not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Printf("practice %s: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

// Get returns one practice.
func (h *PracticesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.withAuthority(*p))
}

// Size classifies one practice as Big or Small.
func (h *PracticesHandler) Size(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	res, err := h.Analysis.Size(r.Context(), p.ID)
	if err != nil {
		log.Printf("size %s: %v", p.ID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, SizeResponse{
		PracticeID: res.PracticeID,
		Count:      res.Count,
		Median:     res.Median,
		Label:      string(res.Label),
		Population: res.Population,
	})
}

// TopDrugs returns a practice's most prescribed presentations, ?limit=
// defaulting to 10 and capped at 100.
func (h *PracticesHandler) TopDrugs(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	limit := parseIntParam(r.URL.Query().Get("limit"), 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	drugs, err := h.Store.TopDrugs(r.Context(), p.ID, limit)
	if err != nil {
		log.Printf("top drugs %s: %v", p.ID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out := make([]DrugResponse, 0, len(drugs))
	for _, d := range drugs {
		out = append(out, DrugResponse{BNFCode: d.BNFCode, BNFName: d.BNFName, Items: d.Items})
	}
	writeJSON(w, out)
}
