package types

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a RawValue holds.
type Kind uint8

const (
	// KindInvalid is the zero RawValue.
	KindInvalid Kind = iota
	// KindBytes is an uninterpreted byte sequence in an unknown encoding.
	KindBytes
	// KindRational is a numerator/denominator pair.
	KindRational
	// KindInteger is a signed integer.
	KindInteger
	// KindFloat is a floating point number.
	KindFloat
	// KindText is a string a tag source has already decoded.
	KindText
	// KindTuple is an ordered sequence of values.
	KindTuple
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindRational:
		return "rational"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

// RawValue is an untyped tag payload as delivered by a tag source.
//
// RawValue is a tagged union. Construct it with Bytes, Rat, Int, Float,
// Text or Tuple and inspect it with Kind and the As* accessors. The zero
// value is KindInvalid.
type RawValue struct {
	b     []byte
	s     string
	items []RawValue
	num   int64
	den   int64
	f     float64
	kind  Kind
}

// Bytes wraps a byte sequence.
func Bytes(b []byte) RawValue {
	return RawValue{kind: KindBytes, b: b}
}

// Rat wraps a rational number. A zero denominator is allowed and is
// interpreted as zero wherever the value is coerced to a number.
func Rat(num, den int64) RawValue {
	return RawValue{kind: KindRational, num: num, den: den}
}

// Int wraps an integer.
func Int(i int64) RawValue {
	return RawValue{kind: KindInteger, num: i}
}

// Float wraps a floating point number.
func Float(f float64) RawValue {
	return RawValue{kind: KindFloat, f: f}
}

// Text wraps an already-decoded string.
func Text(s string) RawValue {
	return RawValue{kind: KindText, s: s}
}

// Tuple wraps an ordered sequence of values.
func Tuple(items ...RawValue) RawValue {
	return RawValue{kind: KindTuple, items: items}
}

// Kind returns the variant held by v.
func (v RawValue) Kind() Kind {
	return v.kind
}

// AsBytes returns the byte payload.
func (v RawValue) AsBytes() ([]byte, bool) {
	return v.b, v.kind == KindBytes
}

// AsRational returns the numerator and denominator.
func (v RawValue) AsRational() (num, den int64, ok bool) {
	return v.num, v.den, v.kind == KindRational
}

// AsInt returns the integer payload.
func (v RawValue) AsInt() (int64, bool) {
	return v.num, v.kind == KindInteger
}

// AsFloat returns the float payload.
func (v RawValue) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsText returns the string payload.
func (v RawValue) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

// AsTuple returns the tuple elements. The slice must not be modified.
func (v RawValue) AsTuple() ([]RawValue, bool) {
	return v.items, v.kind == KindTuple
}

// Number coerces Integer, Float and Rational values to float64.
//
// A Rational with a zero denominator yields 0. Other kinds report false.
func (v RawValue) Number() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.num), true
	case KindFloat:
		return v.f, true
	case KindRational:
		if v.den == 0 {
			return 0, true
		}
		return float64(v.num) / float64(v.den), true
	default:
		return 0, false
	}
}

// IsPlainNumber reports whether v is an Integer or a Float.
func (v RawValue) IsPlainNumber() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// String renders v in a generic, lossless-enough form.
//
// Rationals render as "n/d", tuples as "(a, b)" (a single element tuple as
// "(a,)"), bytes as a quoted ASCII literal.
func (v RawValue) String() string {
	switch v.kind {
	case KindBytes:
		return "b" + strconv.QuoteToASCII(string(v.b))
	case KindRational:
		return strconv.FormatInt(v.num, 10) + "/" + strconv.FormatInt(v.den, 10)
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindText:
		return v.s
	case KindTuple:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}

// FormatFloat renders f in its shortest round-trip decimal form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
