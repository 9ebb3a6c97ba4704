package core

// DefaultIcon is used whenever an icon identifier is not recognized.
const DefaultIcon = "more-horizontal"

// knownIcons is the closed set of icon identifiers the presentation layer
// can render. The data layer stores identifiers only.
var knownIcons = map[string]struct{}{
	"banknote":        {},
	"briefcase":       {},
	"car":             {},
	"credit-card":     {},
	"film":            {},
	"gift":            {},
	"graduation-cap":  {},
	"heart-pulse":     {},
	"landmark":        {},
	"laptop":          {},
	"more-horizontal": {},
	"piggy-bank":      {},
	"receipt":         {},
	"rotate-ccw":      {},
	"shopping-bag":    {},
	"shopping-cart":   {},
	"sparkles":        {},
	"trending-up":     {},
	"utensils":        {},
	"wallet":          {},
}

// IconOrDefault maps an icon identifier to itself when known, otherwise
// to DefaultIcon.
func IconOrDefault(name string) string {
	if _, ok := knownIcons[name]; ok {
		return name
	}
	return DefaultIcon
}
