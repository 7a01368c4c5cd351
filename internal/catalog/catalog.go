// Package catalog holds the static tag tables: display names for general
// and GPS tags, the curated subset shown to users, the formatting rule
// attached to each tag and the enumeration label tables.
//
// Every table is built once at package initialization and never modified.
package catalog

import "strconv"

// Rule identifies how a tag value is rendered for display.
type Rule uint8

const (
	// RuleNone renders the value by its kind alone.
	RuleNone Rule = iota
	// RuleAperture renders "f/<n>".
	RuleAperture
	// RuleShutter renders "1/<n>s".
	RuleShutter
	// RuleFocalLength appends "mm".
	RuleFocalLength
	// RuleISO prefixes "ISO ".
	RuleISO
	// RuleEnum maps an integer code through an enumeration table.
	RuleEnum
	// RuleText decodes byte payloads as text.
	RuleText
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleAperture:
		return "aperture"
	case RuleShutter:
		return "shutter"
	case RuleFocalLength:
		return "focal-length"
	case RuleISO:
		return "iso"
	case RuleEnum:
		return "enum"
	case RuleText:
		return "text"
	default:
		return "none"
	}
}

// Catalog maps numeric tag ids to names and formatting rules.
type Catalog struct {
	names   map[uint16]string
	rules   map[uint16]Rule
	unknown string
}

// Lookup returns the display name and rule for id. Unknown ids resolve to
// a synthesized name ("Unknown Tag 1234") with known set to false.
func (c *Catalog) Lookup(id uint16) (name string, rule Rule, known bool) {
	rule = c.rules[id]
	if name, ok := c.names[id]; ok {
		return name, rule, true
	}
	return c.unknown + strconv.FormatUint(uint64(id), 10), rule, false
}

// Name returns the display name for id, synthesized when unknown.
func (c *Catalog) Name(id uint16) string {
	name, _, _ := c.Lookup(id)
	return name
}

// Len returns the number of named tags.
func (c *Catalog) Len() int {
	return len(c.names)
}

// General is the catalog of standard image and EXIF tags.
var General = &Catalog{
	names:   generalNames,
	rules:   generalRules,
	unknown: "Unknown Tag ",
}

// GPS is the catalog of GPS tags. Its ids are the positional indexes of
// the GPS tag group.
var GPS = &Catalog{
	names:   gpsNames,
	rules:   map[uint16]Rule{},
	unknown: "GPS Tag ",
}

// Important returns the localized label of a curated tag. Tags outside
// the curated subset are not shown in the human-facing section.
func Important(id uint16) (string, bool) {
	label, ok := important[id]
	return label, ok
}

// ImportantIDs returns the number of curated tags.
func ImportantIDs() int {
	return len(important)
}

// GPSIndex returns the positional index of a symbolic GPS tag name.
func GPSIndex(name string) (uint16, bool) {
	idx, ok := gpsIndex[name]
	return idx, ok
}

// GPSName returns the symbolic name of a positional GPS index.
func GPSName(idx uint16) (string, bool) {
	name, ok := gpsNames[idx]
	return name, ok
}

// IsGPSName reports whether name is a symbolic GPS tag name.
func IsGPSName(name string) bool {
	_, ok := gpsIndex[name]
	return ok
}

// IDOf returns the numeric id of a standard tag name such as "Make".
func IDOf(name string) (uint16, bool) {
	id, ok := generalIDs[name]
	return id, ok
}

var (
	gpsIndex   = invert(gpsNames)
	generalIDs = invert(generalNames)
)

func invert(m map[uint16]string) map[string]uint16 {
	out := make(map[string]uint16, len(m))
	for id, name := range m {
		out[name] = id
	}
	return out
}
