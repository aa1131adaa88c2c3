package domain

import "strings"

// Location identifies one warehouse in the inventory source. The value is
// opaque to this job; it is only forwarded as a query parameter and matched
// against warehouse identifiers in responses.
type Location string

// AllLocations means no per-location scoping is configured.
const AllLocations Location = ""

// Label returns a human-readable form for logs and reports.
func (l Location) Label() string {
	if l == AllLocations {
		return "all"
	}
	return string(l)
}

// ParseLocations splits a comma-separated list into an ordered location list,
// dropping empty entries. An empty input means no scoping.
func ParseLocations(s string) []Location {
	var locations []Location
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		locations = append(locations, Location(part))
	}
	return locations
}
