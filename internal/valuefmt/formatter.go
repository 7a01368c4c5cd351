// Package valuefmt renders raw tag values for display according to the
// formatting rule the tag catalog assigns to each tag id.
package valuefmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/textdec"
	"github.com/simonhull/photometa/internal/types"
)

// Formatter renders raw tag values. The zero value uses the default
// decoder.
type Formatter struct {
	Decoder *textdec.Decoder
}

// New returns a Formatter using dec for byte payloads.
func New(dec *textdec.Decoder) *Formatter {
	return &Formatter{Decoder: dec}
}

func (f *Formatter) decoder() *textdec.Decoder {
	if f == nil || f.Decoder == nil {
		return textdec.Default()
	}
	return f.Decoder
}

// Format renders raw as the human-facing value of general tag id.
//
// The bool is false only when the value must be omitted: a byte payload
// no candidate encoding renders as printable text.
func (f *Formatter) Format(id uint16, raw types.RawValue) (types.DecodedValue, bool) {
	_, rule, _ := catalog.General.Lookup(id)

	switch rule {
	case catalog.RuleAperture:
		return aperture(raw), true
	case catalog.RuleShutter:
		return shutter(raw), true
	case catalog.RuleFocalLength:
		return focalLength(raw), true
	case catalog.RuleISO:
		return iso(raw), true
	case catalog.RuleEnum:
		if table, ok := catalog.EnumFor(id); ok {
			return enum(table, raw), true
		}
	}
	return f.plain(raw)
}

// FormatGPS renders a GPS group value. Byte payloads never cause the
// value to be omitted.
func (f *Formatter) FormatGPS(raw types.RawValue) types.DecodedValue {
	if b, ok := raw.AsBytes(); ok {
		return types.Str(f.decoder().Lenient(b))
	}
	v, _ := f.plain(raw)
	return v
}

// FormatRaw renders raw losslessly for the audit section: byte payloads
// that cannot be decoded become hex, never omitted.
func (f *Formatter) FormatRaw(raw types.RawValue) types.DecodedValue {
	switch raw.Kind() {
	case types.KindBytes:
		b, _ := raw.AsBytes()
		return types.Str(f.decoder().DecodeOrHex(b))
	case types.KindInteger, types.KindFloat:
		n, _ := raw.Number()
		return types.Num(n)
	case types.KindText:
		s, _ := raw.AsText()
		return types.Str(s)
	case types.KindTuple:
		items, _ := raw.AsTuple()
		if len(items) == 3 && allPlain(items) {
			return types.Str(joinTuple(items))
		}
		return types.Str(raw.String())
	case types.KindInvalid:
		return types.Unavailable()
	default:
		return types.Str(raw.String())
	}
}

// plain renders a value that has no tag-specific rule.
func (f *Formatter) plain(raw types.RawValue) (types.DecodedValue, bool) {
	switch raw.Kind() {
	case types.KindBytes:
		b, _ := raw.AsBytes()
		s, ok := f.decoder().Decode(b)
		if !ok {
			return types.DecodedValue{}, false
		}
		return types.Str(s), true
	case types.KindText:
		// Text goes through the same printability check as bytes.
		s, _ := raw.AsText()
		if strings.TrimRight(s, "\x00") == "" {
			return types.Str(""), true
		}
		s, ok := f.decoder().Decode([]byte(s))
		if !ok {
			return types.DecodedValue{}, false
		}
		return types.Str(s), true
	case types.KindInteger, types.KindFloat:
		n, _ := raw.Number()
		return types.Num(n), true
	case types.KindTuple:
		items, _ := raw.AsTuple()
		if (len(items) == 2 || len(items) == 3) && allPlain(items) {
			return types.Str(joinTuple(items)), true
		}
		return types.Str(raw.String()), true
	case types.KindInvalid:
		return types.Unavailable(), true
	default:
		return types.Str(raw.String()), true
	}
}

func aperture(raw types.RawValue) types.DecodedValue {
	if num, den, ok := raw.AsRational(); ok {
		return types.Str("f/" + strconv.FormatFloat(ratio(num, den), 'f', 1, 64))
	}
	if v, ok := scalar(raw); ok && v > 0 {
		return types.Str("f/" + pyFloat(v/100))
	}
	return literal(raw)
}

func shutter(raw types.RawValue) types.DecodedValue {
	if num, den, ok := raw.AsRational(); ok {
		return types.Str("1/" + roundInt(ratio(num, den)) + "s")
	}
	if v, ok := scalar(raw); ok && v > 0 {
		return types.Str("1/" + roundInt(math.Pow(2, v)) + "s")
	}
	return literal(raw)
}

func focalLength(raw types.RawValue) types.DecodedValue {
	switch raw.Kind() {
	case types.KindInteger, types.KindFloat, types.KindRational:
		n, _ := raw.Number()
		return types.Str(types.FormatFloat(n) + "mm")
	}
	if v, ok := single(raw); ok {
		return focalLength(v)
	}
	return types.Str(literal(raw).String() + "mm")
}

func iso(raw types.RawValue) types.DecodedValue {
	if num, _, ok := raw.AsRational(); ok {
		return types.Str("ISO " + strconv.FormatInt(num, 10))
	}
	if items, ok := raw.AsTuple(); ok && len(items) >= 1 && len(items) <= 2 {
		return types.Str("ISO " + literal(items[0]).String())
	}
	return types.Str("ISO " + literal(raw).String())
}

func enum(table catalog.Enum, raw types.RawValue) types.DecodedValue {
	v := raw
	if inner, ok := single(raw); ok {
		v = inner
	}
	if code, ok := v.AsInt(); ok {
		if label, ok := table.Label(code); ok {
			return types.Str(label)
		}
		return types.Str(strconv.FormatInt(code, 10))
	}
	return literal(raw)
}

// literal renders raw as its plain string form.
func literal(raw types.RawValue) types.DecodedValue {
	if s, ok := raw.AsText(); ok {
		return types.Str(s)
	}
	return types.Str(raw.String())
}

// scalar returns the value of a bare Integer or Float, unwrapping a
// single-element tuple.
func scalar(raw types.RawValue) (float64, bool) {
	if inner, ok := single(raw); ok {
		raw = inner
	}
	if !raw.IsPlainNumber() {
		return 0, false
	}
	return raw.Number()
}

func single(raw types.RawValue) (types.RawValue, bool) {
	items, ok := raw.AsTuple()
	if !ok || len(items) != 1 {
		return types.RawValue{}, false
	}
	return items[0], true
}

func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// roundInt rounds half away from zero and renders the integer.
func roundInt(v float64) string {
	r := math.Round(v)
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return types.FormatFloat(v)
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

// pyFloat renders v with a trailing ".0" when it is integral, so 2.8 is
// "2.8" and 4 is "4.0".
func pyFloat(v float64) string {
	s := types.FormatFloat(v)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

func allPlain(items []types.RawValue) bool {
	for _, item := range items {
		if !item.IsPlainNumber() {
			return false
		}
	}
	return true
}

func joinTuple(items []types.RawValue) string {
	s := "("
	for i, item := range items {
		if i > 0 {
			s += ", "
		}
		s += item.String()
	}
	return s + ")"
}
