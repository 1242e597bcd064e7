//go:build libpostal

package addrparse

import (
	postal "github.com/openvenues/gopostal/parser"
)

// Parse splits address with libpostal.
func Parse(address string) Components {
	parsed := postal.ParseAddress(address)
	parts := make([]labelled, len(parsed))
	for i, p := range parsed {
		parts[i] = labelled{label: p.Label, value: p.Value}
	}
	c := fromLabels(parts)
	if c.Postcode == "" {
		c.Postcode = heuristic(address).Postcode
	}
	return c
}
