// Package geo converts degree/minute/second GPS tag values to signed
// decimal degrees.
//
// GPS groups arrive in two key conventions: symbolic names
// ("GPSLatitude") from the high-level tag source and positional indexes
// (2) from the low-level one. Both conventions resolve through the same
// conversion.
package geo

import (
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/textdec"
	"github.com/simonhull/photometa/internal/types"
)

// Rounding precisions, in fraction digits.
const (
	PrecisionDisplay  = 6
	PrecisionInternal = 8
)

// Symbolic names of the coordinate fields.
const (
	Latitude         = "GPSLatitude"
	LatitudeRef      = "GPSLatitudeRef"
	Longitude        = "GPSLongitude"
	LongitudeRef     = "GPSLongitudeRef"
	DestLatitude     = "GPSDestLatitude"
	DestLatitudeRef  = "GPSDestLatitudeRef"
	DestLongitude    = "GPSDestLongitude"
	DestLongitudeRef = "GPSDestLongitudeRef"
)

// Converter computes decimal degrees from a GPS tag group.
type Converter struct {
	Decoder *textdec.Decoder
}

// New returns a Converter decoding hemisphere references with dec.
func New(dec *textdec.Decoder) *Converter {
	return &Converter{Decoder: dec}
}

func (c *Converter) decoder() *textdec.Decoder {
	if c == nil || c.Decoder == nil {
		return textdec.Default()
	}
	return c.Decoder
}

// FromNamed converts a group keyed by symbolic names, falling back to the
// positional index of each name.
func (c *Converter) FromNamed(dict types.TagDictionary, coordName, refName string, digits int) (float64, bool) {
	return c.ToDecimalDegrees(dict, types.Name(coordName), types.Name(refName), digits)
}

// FromPositional converts a group keyed by positional indexes, falling
// back to the symbolic name of each index.
func (c *Converter) FromPositional(dict types.TagDictionary, coordIdx, refIdx uint16, digits int) (float64, bool) {
	return c.ToDecimalDegrees(dict, types.ID(coordIdx), types.ID(refIdx), digits)
}

// ToDecimalDegrees resolves the coordinate and hemisphere reference under
// coordKey and refKey (or their alternate-convention keys) and returns
// degrees + minutes/60 + seconds/3600, negated for S and W references and
// rounded to digits fraction digits.
//
// A decimal coordinate that is already negative keeps its sign.
//
// A missing or malformed coordinate reports false. A missing or empty
// reference defaults to N for latitude fields and E for longitude fields.
func (c *Converter) ToDecimalDegrees(dict types.TagDictionary, coordKey, refKey types.Key, digits int) (float64, bool) {
	coord, ok := resolve(dict, coordKey)
	if !ok {
		return 0, false
	}

	var value float64
	decimal := false
	if items, ok := coord.AsTuple(); ok {
		if len(items) != 3 {
			return 0, false
		}
		var dms [3]float64
		for i, item := range items {
			n, ok := component(item)
			if !ok {
				return 0, false
			}
			dms[i] = n
		}
		value = dms[0] + dms[1]/60 + dms[2]/3600
	} else if f, ok := coord.AsFloat(); ok {
		// Some sources deliver the coordinate already in decimal degrees,
		// possibly signed.
		value = f
		decimal = true
	} else {
		return 0, false
	}

	ref := c.reference(dict, refKey)
	if ref == "" {
		ref = defaultRef(coordKey)
	}
	if (ref == "S" || ref == "W") && (!decimal || value > 0) {
		value = -value
	}

	return Round(value, digits), true
}

// Coordinate derives latitude and longitude from a GPS group in either
// key convention.
func (c *Converter) Coordinate(dict types.TagDictionary, digits int) types.GPSCoordinate {
	var out types.GPSCoordinate
	if lat, ok := c.FromNamed(dict, Latitude, LatitudeRef, digits); ok {
		out.Latitude = &lat
	}
	if lon, ok := c.FromNamed(dict, Longitude, LongitudeRef, digits); ok {
		out.Longitude = &lon
	}
	return out
}

// Point returns c as an orb point (longitude, latitude).
func Point(c types.GPSCoordinate) (orb.Point, bool) {
	if !c.Complete() {
		return orb.Point{}, false
	}
	return orb.Point{*c.Longitude, *c.Latitude}, true
}

// Round rounds v half away from zero to digits fraction digits.
func Round(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow(10, float64(digits))
	r := math.Round(v*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}

// resolve looks k up, then its alternate-convention key.
func resolve(dict types.TagDictionary, k types.Key) (types.RawValue, bool) {
	if v, ok := dict.Get(k); ok {
		return v, true
	}
	alt, ok := alternate(k)
	if !ok {
		return types.RawValue{}, false
	}
	return dict.Get(alt)
}

func alternate(k types.Key) (types.Key, bool) {
	if name, ok := k.Symbol(); ok {
		idx, ok := catalog.GPSIndex(name)
		return types.ID(idx), ok
	}
	id, _ := k.Numeric()
	name, ok := catalog.GPSName(id)
	return types.Name(name), ok
}

// reference returns the decoded, trimmed hemisphere reference, or "" when
// absent.
func (c *Converter) reference(dict types.TagDictionary, k types.Key) string {
	v, ok := resolve(dict, k)
	if !ok {
		return ""
	}
	var s string
	switch v.Kind() {
	case types.KindText:
		s, _ = v.AsText()
	case types.KindBytes:
		b, _ := v.AsBytes()
		s = c.decoder().Lenient(b)
	default:
		return ""
	}
	return strings.ToUpper(strings.Trim(s, " \x00"))
}

// defaultRef picks N for latitude keys and E for everything else.
func defaultRef(coordKey types.Key) string {
	name, ok := coordKey.Symbol()
	if !ok {
		id, _ := coordKey.Numeric()
		name, _ = catalog.GPSName(id)
	}
	if strings.Contains(name, "Lat") {
		return "N"
	}
	return "E"
}

// component coerces one degree/minute/second element. A Rational with a
// zero denominator contributes 0.
func component(v types.RawValue) (float64, bool) {
	switch v.Kind() {
	case types.KindInteger, types.KindFloat, types.KindRational:
		return v.Number()
	case types.KindTuple:
		// A (numerator, denominator) pair from sources without a rational type.
		items, _ := v.AsTuple()
		if len(items) != 2 {
			return 0, false
		}
		num, ok1 := items[0].Number()
		den, ok2 := items[1].Number()
		if !ok1 || !ok2 {
			return 0, false
		}
		if den == 0 {
			return 0, true
		}
		return num / den, true
	default:
		return 0, false
	}
}
