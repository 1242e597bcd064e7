package addrparse

import (
	"testing"

	"github.com/gp-wales/internal/county"
)

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    Components
	}{
		{
			name:    "full address",
			address: "12 High Street, Ystrad Mynach, Gwent, NP11 5GX",
			want:    Components{HouseNumber: "12", Road: "High Street", City: "Ystrad Mynach", County: "Gwent", Postcode: "NP11 5GX"},
		},
		{
			name:    "postcode joined to town",
			address: "Bridge Street, Cardiff CF14 1AB",
			want:    Components{Road: "Bridge Street", City: "Cardiff", Postcode: "CF14 1AB"},
		},
		{
			name:    "lower-case postcode joined to town",
			address: "Heol y Deri, Caerffili cf83 1aa",
			want:    Components{Road: "Heol y Deri", City: "Caerffili", Postcode: "CF83 1AA"},
		},
		{
			name:    "unspaced postcode",
			address: "Penarth, cf641aa",
			want:    Components{City: "Penarth", Postcode: "CF64 1AA"},
		},
		{
			name:    "no postcode",
			address: "The Surgery, Cwmbran, Gwent",
			want:    Components{Road: "The Surgery", City: "Cwmbran", County: "Gwent"},
		},
		{
			name:    "empty",
			address: "",
			want:    Components{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heuristic(tt.address); got != tt.want {
				t.Errorf("heuristic(%q) = %+v, want %+v", tt.address, got, tt.want)
			}
		})
	}
}

func TestFromLabels(t *testing.T) {
	got := fromLabels([]labelled{
		{"house_number", "12"},
		{"road", "high street"},
		{"suburb", "tredomen"},
		{"city", "ystrad mynach"},
		{"state", "wales"},
		{"postcode", "np11 5gx"},
	})
	want := Components{HouseNumber: "12", Road: "high street", City: "ystrad mynach", Postcode: "NP11 5GX"}
	if got != want {
		t.Errorf("fromLabels() = %+v, want %+v", got, want)
	}

	withDistrict := fromLabels([]labelled{{"state_district", "gwynedd"}, {"state", "wales"}})
	if withDistrict.County != "gwynedd" {
		t.Errorf("County = %q, want gwynedd", withDistrict.County)
	}
}

func TestResolve(t *testing.T) {
	r := county.NewResolver(county.MatchOutward)
	tests := []struct {
		address string
		want    county.County
	}{
		{"12 High Street, Ystrad Mynach, Gwent, NP11 5GX", county.Caerphilly},
		{"1 Stanwell Road, Penarth, South Glamorgan, CF64 1AA", county.ValeOfGlamorgan},
		{"The Surgery, Cwmbran, Gwent", county.Unknown},
		{"Health Centre, Somewhere, ZZ1 1ZZ", county.Unknown},
	}
	for _, tt := range tests {
		if _, got := Resolve(r, tt.address); got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.address, got, tt.want)
		}
	}
}
