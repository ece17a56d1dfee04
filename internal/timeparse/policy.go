package timeparse

import (
	"fmt"
	"strings"
)

// Policy decides how a timestamp carrying both a numeric offset and a zone
// annotation is resolved when the offset is not one the zone uses for that
// civil time.
type Policy int

const (
	// PreferEmbeddedOffset keeps the instant the offset names and reads it
	// in the annotated zone.
	PreferEmbeddedOffset Policy = iota
	// PreferZoneRules drops the offset and resolves the civil time in the
	// zone with compatible disambiguation.
	PreferZoneRules
	// RejectAmbiguous fails unless the offset is valid in the zone.
	RejectAmbiguous
)

var policyNames = map[Policy]string{
	PreferEmbeddedOffset: "offset",
	PreferZoneRules:      "zone",
	RejectAmbiguous:      "reject",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses "offset", "zone", or "reject".
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid offset conflict policy %q (expected offset, zone, or reject)", s)
}
