//go:build !libpostal

package addrparse

// Parse splits address with the comma heuristic. Build with -tags libpostal
// to use libpostal instead.
func Parse(address string) Components {
	return heuristic(address)
}
