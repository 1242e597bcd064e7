package web

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/store"
	"github.com/gp-wales/internal/testdb"
	"github.com/gp-wales/internal/web/handlers"
)

func init() {
	log.SetOutput(io.Discard)
}

func newTestServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	conn := testdb.New(t)
	testdb.Seed(t, conn)
	st := store.New(conn, false)
	svc := analysis.New(st, county.NewResolver(county.MatchOutward),
		config.AnalysisConfig{TopDrugs: 10, KMeansK: 2, KMeansSeed: 42}, false)

	srv := NewServer(config.WebConfig{Host: "127.0.0.1", Port: 0, APIKey: apiKey}, st, svc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestStatusCodes(t *testing.T) {
	ts := newTestServer(t, "")
	tests := []struct {
		path string
		want int
	}{
		{"/api/resolve?postcode=NP11+5GX&county=Gwent&posttown=YSTRAD+MYNACH", http.StatusOK},
		{"/api/resolve", http.StatusBadRequest},
		{"/api/practices?postcode=CF14+1AB", http.StatusOK},
		{"/api/practices?postcode=nope", http.StatusBadRequest},
		{"/api/practices/W00001", http.StatusOK},
		{"/api/practices/NOPE", http.StatusNotFound},
		{"/api/practices/NOPE/size", http.StatusNotFound},
		{"/api/practices/W00001/drugs?limit=2", http.StatusOK},
		{"/api/counties", http.StatusOK},
		{"/api/authorities", http.StatusOK},
		{"/api/export/counties.xlsx", http.StatusOK},
		{"/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, _ := get(t, ts, tt.path)
			if resp.StatusCode != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.want)
			}
		})
	}
}

func TestResolveEndpoint(t *testing.T) {
	ts := newTestServer(t, "")
	tests := []struct {
		query string
		want  string
		known bool
	}{
		{"postcode=NP11+5GX&county=Gwent&posttown=YSTRAD+MYNACH", "Caerphilly", true},
		{"postcode=CF14+1AB&county=Unknown+County&posttown=UNRECOGNISED+TOWN", "Cardiff", true},
		{"address=1+Stanwell+Road,+Penarth,+South+Glamorgan,+CF64+1AA", "Vale of Glamorgan", true},
		{"postcode=ZZ1+1ZZ&county=Dyfed", "Unknown", false},
	}
	for _, tt := range tests {
		_, body := get(t, ts, "/api/resolve?"+tt.query)
		var got handlers.ResolveResponse
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		if got.Resolved != tt.want || got.Known != tt.known {
			t.Errorf("resolve %s = %+v, want %s known=%v", tt.query, got, tt.want, tt.known)
		}
		if got.Mode != "outward" {
			t.Errorf("mode = %q, want outward", got.Mode)
		}
	}
}

func TestPracticesEndpoints(t *testing.T) {
	ts := newTestServer(t, "")

	_, body := get(t, ts, "/api/practices?postcode=cf141ab")
	var list []handlers.PracticeResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "W00001" || list[0].Authority != "Cardiff" {
		t.Errorf("practices = %+v", list)
	}

	_, body = get(t, ts, "/api/practices/W00001/size")
	var size handlers.SizeResponse
	if err := json.Unmarshal(body, &size); err != nil {
		t.Fatal(err)
	}
	if size.Label != "Big" || size.Median != 2 || size.Count != 4 {
		t.Errorf("size = %+v", size)
	}

	_, body = get(t, ts, "/api/practices/W00001/drugs?limit=2")
	var drugs []handlers.DrugResponse
	if err := json.Unmarshal(body, &drugs); err != nil {
		t.Fatal(err)
	}
	if len(drugs) != 2 || drugs[0].Items != 200 {
		t.Errorf("drugs = %+v", drugs)
	}
}

func TestCountiesEndpoint(t *testing.T) {
	ts := newTestServer(t, "")
	_, body := get(t, ts, "/api/counties")
	var got handlers.CountiesResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Unknown != 1 {
		t.Errorf("unknown = %d, want 1", got.Unknown)
	}
	for _, c := range got.Counties {
		if c.County == "Unknown" {
			t.Error("Unknown listed as a county row")
		}
	}
	if len(got.Counties) != 4 {
		t.Errorf("got %d counties, want 4", len(got.Counties))
	}
}

func TestMetricsCountRequests(t *testing.T) {
	ts := newTestServer(t, "")
	get(t, ts, "/api/authorities")
	_, body := get(t, ts, "/metrics")
	if !strings.Contains(string(body), `gprx_http_requests_total{code="200",method="GET",route="/api/authorities"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", body)
	}
}

func TestAPIKey(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp, _ := get(t, ts, "/api/authorities")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("without key = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/authorities", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("with key = %d, want 200", resp.StatusCode)
	}

	resp, _ = get(t, ts, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/metrics with key set = %d, want 200", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
	}{
		{"open api", ""},
		{"api key set", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.apiKey)

			req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/authorities", nil)
			req.Header.Set("Origin", "https://example.org")
			req.Header.Set("Access-Control-Request-Method", "GET")
			req.Header.Set("Access-Control-Request-Headers", "X-API-Key")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				t.Errorf("OPTIONS status = %d, want 204", resp.StatusCode)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
			}
			if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-API-Key") {
				t.Errorf("Access-Control-Allow-Headers = %q, want X-API-Key listed", got)
			}
		})
	}

	ts := newTestServer(t, "")
	resp, _ := get(t, ts, "/api/authorities")
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("GET Access-Control-Allow-Origin = %q, want *", got)
	}
}
