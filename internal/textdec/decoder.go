// Package textdec converts byte payloads in unknown encodings to printable
// text by trying an ordered list of candidate encodings.
package textdec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// HexPrefix marks a payload no candidate encoding could render.
const HexPrefix = "[HEX] "

// DefaultEncodings is the preference order used by Default.
var DefaultEncodings = []string{"utf-8", "latin-1", "cp1252", "gbk"}

// Encoding is one candidate in a Decoder's preference list. A nil enc
// means UTF-8, which is validated rather than transcoded.
type Encoding struct {
	enc  encoding.Encoding
	Name string
}

var builtin = map[string]encoding.Encoding{
	"utf-8":        nil,
	"utf8":         nil,
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"gbk":          simplifiedchinese.GBK,
	"gb18030":      simplifiedchinese.GB18030,
}

// Lookup resolves an encoding name. Common aliases are recognized
// directly; anything else is resolved through the IANA registry.
func Lookup(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := builtin[key]; ok {
		return Encoding{Name: key, enc: enc}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return Encoding{}, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return Encoding{}, fmt.Errorf("encoding %q is not supported", name)
	}
	return Encoding{Name: key, enc: enc}, nil
}

// Decoder renders byte payloads as text.
//
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	encodings []Encoding
}

// New returns a Decoder trying the named encodings in order.
func New(names ...string) (*Decoder, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one encoding is required")
	}
	d := &Decoder{encodings: make([]Encoding, 0, len(names))}
	for _, name := range names {
		enc, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		d.encodings = append(d.encodings, enc)
	}
	return d, nil
}

var defaultDecoder = func() *Decoder {
	d, err := New(DefaultEncodings...)
	if err != nil {
		panic(err)
	}
	return d
}()

// Default returns the decoder for utf-8, latin-1, cp1252 and gbk.
func Default() *Decoder {
	return defaultDecoder
}

// Names returns the encoding names in preference order.
func (d *Decoder) Names() []string {
	names := make([]string, len(d.encodings))
	for i, e := range d.encodings {
		names[i] = e.Name
	}
	return names
}

// Decode returns the first decoding that succeeds and is entirely
// printable. Trailing NUL terminators are ignored.
func (d *Decoder) Decode(b []byte) (string, bool) {
	s, _, ok := d.DecodeWith(b)
	return s, ok
}

// DecodeWith is Decode that also reports which encoding matched.
func (d *Decoder) DecodeWith(b []byte) (text, encodingName string, ok bool) {
	b = bytes.TrimRight(b, "\x00")
	if len(b) == 0 {
		return "", "", false
	}
	for _, e := range d.encodings {
		s, ok := e.decode(b)
		if ok && printable(s) {
			return s, e.Name, true
		}
	}
	return "", "", false
}

// DecodeOrHex decodes b, falling back to "[HEX] <lowercase hex>" of the
// untrimmed payload.
func (d *Decoder) DecodeOrHex(b []byte) string {
	if s, ok := d.Decode(b); ok {
		return s
	}
	return Hex(b)
}

// Lenient decodes b without ever failing: a successful Decode is returned
// as is, otherwise invalid UTF-8 sequences and unprintable runes are
// dropped.
func (d *Decoder) Lenient(b []byte) string {
	if s, ok := d.Decode(b); ok {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, string(b))
}

// Hex renders b as "[HEX] <lowercase hex>".
func Hex(b []byte) string {
	return HexPrefix + hex.EncodeToString(b)
}

func (e Encoding) decode(b []byte) (string, bool) {
	if e.enc == nil {
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	}
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	// x/text substitutes U+FFFD for bytes it cannot map.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// printable reports whether s is non-empty and every rune is printable.
// Space is printable; other whitespace and control characters are not.
func printable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
