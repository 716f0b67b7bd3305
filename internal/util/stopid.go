package util

import "strings"

// GenerateStopID derives a stop's ID from its name: lower-cased, with every
// run of whitespace replaced by a single underscore.
// Example: "Central  Bus Stand" -> "central_bus_stand"
func GenerateStopID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}
