package boe

import (
	"regexp"
	"time"
)

// DateLayout is the YYYYMMDD form used by the daily summary endpoint.
const DateLayout = "20060102"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// ValidID reports whether id has the shape of a gazette document identifier
// such as BOE-A-2024-1.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// ParseDate parses a YYYYMMDD date.
func ParseDate(fecha string) (time.Time, error) {
	return time.Parse(DateLayout, fecha)
}
