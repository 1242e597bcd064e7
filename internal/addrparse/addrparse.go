// Package addrparse splits a one-line practice address into the postcode,
// post town and county fields that county resolution reads.
//
// With the libpostal build tag the split is done by libpostal through
// gopostal; otherwise a comma-separated heuristic is used.
package addrparse

import (
	"strings"

	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/normalize"
)

// Components are the address parts the resolver needs.
type Components struct {
	HouseNumber string
	Road        string
	City        string
	County      string
	Postcode    string
}

// Label/value pair as produced by a parser.
type labelled struct {
	label string
	value string
}

// fromLabels folds parser output into Components. state_district is
// preferred over state, which for Welsh addresses is usually "wales".
func fromLabels(parts []labelled) Components {
	var c Components
	var state string
	for _, p := range parts {
		v := strings.TrimSpace(p.value)
		switch p.label {
		case "house_number":
			c.HouseNumber = v
		case "road":
			c.Road = v
		case "city", "town", "suburb":
			if c.City == "" || p.label == "city" {
				c.City = v
			}
		case "state_district":
			c.County = v
		case "state":
			state = v
		case "postcode":
			c.Postcode = normalize.Postcode(v)
		}
	}
	if c.County == "" && !strings.EqualFold(state, "wales") {
		c.County = state
	}
	return c
}

// Resolve parses address and resolves it to a unitary authority.
func Resolve(r *county.Resolver, address string) (Components, county.County) {
	c := Parse(address)
	return c, r.Resolve(c.Postcode, c.County, c.City)
}

// heuristic splits "street, town, county, postcode" style addresses. The
// postcode is found anywhere in the text; the remaining comma-separated
// parts are read from the end as county then town.
func heuristic(address string) Components {
	var c Components
	c.Postcode = normalize.ExtractPostcode(address)

	var parts []string
	for _, p := range strings.Split(address, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if c.Postcode != "" && normalize.ExtractPostcode(p) == c.Postcode {
			rest := normalize.StripPostcode(p)
			if rest == "" {
				continue
			}
			p = rest
		}
		parts = append(parts, p)
	}

	switch len(parts) {
	case 0:
	case 1:
		c.City = parts[0]
	case 2:
		c.Road, c.City = parts[0], parts[1]
	default:
		c.Road = parts[0]
		c.City = parts[len(parts)-2]
		c.County = parts[len(parts)-1]
	}
	if fields := strings.Fields(c.Road); len(fields) > 1 && isNumber(fields[0]) {
		c.HouseNumber = fields[0]
		c.Road = strings.Join(fields[1:], " ")
	}
	return c
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
