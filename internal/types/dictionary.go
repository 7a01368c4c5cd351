package types

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
)

// Key addresses a tag inside a TagDictionary.
//
// Most tag sources key entries by numeric tag id. Some key a group by
// symbolic name instead ("GPSLatitude"). Key holds either form and is
// comparable, so it can be used as a map key directly.
type Key struct {
	name  string
	id    uint16
	named bool
}

// ID returns a numeric key.
func ID(id uint16) Key {
	return Key{id: id}
}

// Name returns a symbolic key.
func Name(name string) Key {
	return Key{name: name, named: true}
}

// Numeric returns the tag id of a numeric key.
func (k Key) Numeric() (uint16, bool) {
	return k.id, !k.named
}

// Symbol returns the name of a symbolic key.
func (k Key) Symbol() (string, bool) {
	return k.name, k.named
}

// String returns the decimal tag id or the symbolic name.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.FormatUint(uint64(k.id), 10)
}

// compareKeys orders numeric keys before symbolic ones.
func compareKeys(a, b Key) int {
	if a.named != b.named {
		if a.named {
			return 1
		}
		return -1
	}
	if a.named {
		return cmp.Compare(a.name, b.name)
	}
	return cmp.Compare(a.id, b.id)
}

// TagDictionary maps tag keys to raw values.
type TagDictionary map[Key]RawValue

// Get returns the value stored under k.
func (d TagDictionary) Get(k Key) (RawValue, bool) {
	if d == nil {
		return RawValue{}, false
	}
	v, ok := d[k]
	return v, ok
}

// Len returns the number of entries.
func (d TagDictionary) Len() int {
	return len(d)
}

// Keys returns the keys in a stable order: numeric ids ascending, then
// symbolic names alphabetically.
func (d TagDictionary) Keys() []Key {
	return slices.SortedFunc(maps.Keys(d), compareKeys)
}

// SectionedDictionary groups tag dictionaries by section name.
//
// This is the layout of the low-level tag source: "0th", "Exif", "GPS",
// "Interop" and "1st", each keyed by numeric tag id.
type SectionedDictionary map[string]TagDictionary

// Section names used by the low-level tag source.
const (
	Section0th     = "0th"
	SectionExif    = "Exif"
	SectionGPS     = "GPS"
	SectionInterop = "Interop"
	Section1st     = "1st"
)

var sectionOrder = map[string]int{
	Section0th:     0,
	SectionExif:    1,
	SectionGPS:     2,
	SectionInterop: 3,
	Section1st:     4,
}

// Section returns the named section, or nil.
func (s SectionedDictionary) Section(name string) TagDictionary {
	if s == nil {
		return nil
	}
	return s[name]
}

// Names returns section names in IFD order; unknown sections sort last
// alphabetically.
func (s SectionedDictionary) Names() []string {
	return slices.SortedFunc(maps.Keys(s), func(a, b string) int {
		ra, oka := sectionOrder[a]
		rb, okb := sectionOrder[b]
		switch {
		case oka && okb:
			return cmp.Compare(ra, rb)
		case oka:
			return -1
		case okb:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
}

// PrimaryTags is the output of the high-level tag source: the general tag
// group keyed by tag id and, when the image carries one, the GPS group.
//
// HasGPS distinguishes "no GPS group" from "an empty GPS group".
type PrimaryTags struct {
	General TagDictionary
	GPS     TagDictionary
	HasGPS  bool
}
