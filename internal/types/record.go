// Package types provides core data structures for photo metadata
// extraction.
//
// This package defines the raw tag representation delivered by tag sources
// (RawValue, TagDictionary, SectionedDictionary) and the decoded
// MetadataRecord that the extraction engine produces from them.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"slices"
)

// Display names of the fields the reconciler derives from the GPS group.
const (
	FieldLatitude  = "緯度 (十進位)"
	FieldLongitude = "經度 (十進位)"
	FieldMapLink   = "Google Maps 連結"
)

// DefaultMapsBaseURL is the base of generated map links.
const DefaultMapsBaseURL = "https://www.google.com/maps"

type valueKind uint8

const (
	valueUnavailable valueKind = iota
	valueString
	valueNumber
)

// DecodedValue is a formatted tag value: a string, a number, or
// unavailable. The zero value is unavailable.
type DecodedValue struct {
	s    string
	n    float64
	kind valueKind
}

// Str returns a string value.
func Str(s string) DecodedValue {
	return DecodedValue{kind: valueString, s: s}
}

// Num returns a numeric value. NaN and infinities are unavailable.
func Num(f float64) DecodedValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return DecodedValue{}
	}
	return DecodedValue{kind: valueNumber, n: f}
}

// Unavailable returns the sentinel for a value that could not be produced.
func Unavailable() DecodedValue {
	return DecodedValue{}
}

// IsAvailable reports whether v holds a string or a number.
func (v DecodedValue) IsAvailable() bool {
	return v.kind != valueUnavailable
}

// AsString returns the string payload.
func (v DecodedValue) AsString() (string, bool) {
	return v.s, v.kind == valueString
}

// AsNumber returns the numeric payload.
func (v DecodedValue) AsNumber() (float64, bool) {
	return v.n, v.kind == valueNumber
}

// String renders v for display. Unavailable values render as "null".
func (v DecodedValue) String() string {
	switch v.kind {
	case valueString:
		return v.s
	case valueNumber:
		return FormatFloat(v.n)
	default:
		return "null"
	}
}

// MarshalJSON encodes strings as JSON strings, numbers as JSON numbers and
// unavailable values as null.
func (v DecodedValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueString:
		return json.Marshal(v.s)
	case valueNumber:
		return []byte(FormatFloat(v.n)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON string, number or null.
func (v *DecodedValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Unavailable()
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Str(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("decoded value: %w", err)
		}
		*v = Num(f)
	}
	return nil
}

// OrderedMap is a string-keyed map of decoded values that remembers
// insertion order. The zero value is ready to use.
type OrderedMap struct {
	values map[string]DecodedValue
	keys   []string
}

// Set stores value under key. Overwriting keeps the original position.
func (m *OrderedMap) Set(key string, value DecodedValue) {
	if m.values == nil {
		m.values = make(map[string]DecodedValue)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (DecodedValue, bool) {
	if m.values == nil {
		return DecodedValue{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates entries in insertion order.
func (m *OrderedMap) All() iter.Seq2[string, DecodedValue] {
	return func(yield func(string, DecodedValue) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes a JSON object with keys in insertion order.
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	*m = OrderedMap{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ordered map: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered map: expected key, got %v", tok)
		}
		var v DecodedValue
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("ordered map %q: %w", key, err)
		}
		m.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// GPSCoordinate is a position in signed decimal degrees. A nil field means
// the coordinate could not be derived.
type GPSCoordinate struct {
	Latitude  *float64
	Longitude *float64
}

// Complete reports whether both latitude and longitude are present.
func (c GPSCoordinate) Complete() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// MapLink returns "<base>?q=<lat>,<lon>" when both coordinates are present.
func (c GPSCoordinate) MapLink(base string) (string, bool) {
	if !c.Complete() {
		return "", false
	}
	return base + "?q=" + FormatFloat(*c.Latitude) + "," + FormatFloat(*c.Longitude), true
}

// Diagnostics records what an extraction found and what it could not do.
//
// Pointer fields are nil when the check was not attempted, so consumers
// can tell "not attempted" apart from "attempted and false".
type Diagnostics struct {
	HasGeneralSupport        *bool    `json:"has_general_support"`
	ExifFound                *bool    `json:"exif_data_found"`
	ExifTagCount             *int     `json:"exif_tags_count"`
	GPSFound                 *bool    `json:"gps_data_found"`
	GPSSource                *string  `json:"gps_source"`
	SecondaryDecodeSucceeded *bool    `json:"secondary_success"`
	SecondarySections        []string `json:"secondary_sections,omitempty"`
	SecondaryError           string   `json:"secondary_error,omitempty"`
	FileHeader               string   `json:"file_header,omitempty"`
	JPEGExifMarker           *bool    `json:"jpeg_exif_marker,omitempty"`
	HeaderCheckError         string   `json:"header_check_error,omitempty"`
	Suggestions              []string `json:"suggestions"`
}

// MetadataRecord is the result of one extraction.
//
// The JSON form has five sections plus an optional error and is the
// compatibility surface for printers, file writers and stores.
type MetadataRecord struct {
	Basic       OrderedMap                          `json:"basic_info"`
	EXIF        OrderedMap                          `json:"exif_data"`
	GPS         OrderedMap                          `json:"gps_data"`
	Raw         map[string]map[string]DecodedValue `json:"raw_data"`
	Diagnostics Diagnostics                         `json:"diagnostic_info"`
	Error       string                              `json:"error,omitempty"`

	Path     string        `json:"-"`
	Format   Format        `json:"-"`
	Location GPSCoordinate `json:"-"`
	Warnings []Warning     `json:"-"`
}

// NewRecord returns an empty record with every section initialized.
func NewRecord(path string) *MetadataRecord {
	return &MetadataRecord{
		Path:        path,
		Raw:         make(map[string]map[string]DecodedValue),
		Diagnostics: Diagnostics{Suggestions: []string{}},
	}
}
