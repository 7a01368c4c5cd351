package types

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestKey(t *testing.T) {
	k := ID(271)
	if id, ok := k.Numeric(); !ok || id != 271 {
		t.Errorf("Numeric() = %d, %v", id, ok)
	}
	if _, ok := k.Symbol(); ok {
		t.Error("numeric key reported a symbol")
	}
	if k.String() != "271" {
		t.Errorf("String() = %q", k.String())
	}

	n := Name("GPSLatitude")
	if s, ok := n.Symbol(); !ok || s != "GPSLatitude" {
		t.Errorf("Symbol() = %q, %v", s, ok)
	}
	if n == ID(0) {
		t.Error("symbolic key must not equal numeric key 0")
	}
}

func TestTagDictionary_Keys(t *testing.T) {
	d := TagDictionary{
		Name("GPSLongitude"): Int(1),
		ID(272):              Int(2),
		Name("GPSLatitude"):  Int(3),
		ID(33434):            Int(4),
		ID(1):                Int(5),
	}

	got := make([]string, 0, d.Len())
	for _, k := range d.Keys() {
		got = append(got, k.String())
	}
	want := []string{"1", "272", "33434", "GPSLatitude", "GPSLongitude"}
	if !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestTagDictionary_GetNil(t *testing.T) {
	var d TagDictionary
	if _, ok := d.Get(ID(1)); ok {
		t.Error("Get on nil dictionary reported ok")
	}
}

func TestSectionedDictionary_Names(t *testing.T) {
	s := SectionedDictionary{
		Section1st:     {},
		"thumbnail":    {},
		SectionGPS:     {},
		Section0th:     {},
		SectionExif:    {},
		SectionInterop: {},
	}
	want := []string{"0th", "Exif", "GPS", "Interop", "1st", "thumbnail"}
	if got := s.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if s.Section("missing") != nil {
		t.Error("Section(missing) should be nil")
	}
}

func TestDecodedValue_JSON(t *testing.T) {
	tests := []struct {
		name string
		v    DecodedValue
		want string
	}{
		{"string", Str("50mm"), `"50mm"`},
		{"number", Num(40.446111), `40.446111`},
		{"integral number", Num(3), `3`},
		{"unavailable", Unavailable(), `null`},
		{"nan", Num(math.NaN()), `null`},
		{"unicode string", Str("緯度"), `"緯度"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodedValue_String(t *testing.T) {
	if Unavailable().String() != "null" {
		t.Errorf("Unavailable().String() = %q", Unavailable().String())
	}
	if Num(-33.016667).String() != "-33.016667" {
		t.Errorf("Num().String() = %q", Num(-33.016667).String())
	}
	if Unavailable().IsAvailable() {
		t.Error("Unavailable().IsAvailable() = true")
	}
}

func TestOrderedMap(t *testing.T) {
	var m OrderedMap
	m.Set("相機製造商", Str("Canon"))
	m.Set("焦距", Str("50mm"))
	m.Set("ISO 感光度", Str("ISO 200"))
	m.Set("相機製造商", Str("Nikon"))

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	want := []string{"相機製造商", "焦距", "ISO 感光度"}
	if !slices.Equal(m.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", m.Keys(), want)
	}
	if v, _ := m.Get("相機製造商"); v.String() != "Nikon" {
		t.Errorf("overwrite lost: %v", v)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(data), `{"相機製造商":"Nikon","焦距"`) {
		t.Errorf("Marshal() order not preserved: %s", data)
	}

	var back OrderedMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !slices.Equal(back.Keys(), want) {
		t.Errorf("Unmarshal() keys = %v, want %v", back.Keys(), want)
	}
}

func TestOrderedMap_Empty(t *testing.T) {
	var m OrderedMap
	data, err := json.Marshal(m)
	if err != nil || string(data) != "{}" {
		t.Errorf("Marshal(empty) = %s, %v", data, err)
	}
	for range m.All() {
		t.Error("All() on empty map yielded")
	}
}

func TestGPSCoordinate_MapLink(t *testing.T) {
	lat, lon := 40.446111, -79.982222

	tests := []struct {
		name   string
		coord  GPSCoordinate
		want   string
		wantOK bool
	}{
		{"complete", GPSCoordinate{&lat, &lon}, "https://www.google.com/maps?q=40.446111,-79.982222", true},
		{"missing longitude", GPSCoordinate{Latitude: &lat}, "", false},
		{"empty", GPSCoordinate{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.coord.MapLink(DefaultMapsBaseURL)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MapLink() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMetadataRecord_JSONShape(t *testing.T) {
	rec := NewRecord("photo.jpg")
	rec.Basic.Set("檔案名稱", Str("photo.jpg"))

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)

	order := []string{`"basic_info"`, `"exif_data"`, `"gps_data"`, `"raw_data"`, `"diagnostic_info"`}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key)
		if i < 0 {
			t.Fatalf("missing %s in %s", key, s)
		}
		if i < last {
			t.Errorf("%s out of order in %s", key, s)
		}
		last = i
	}
	if strings.Contains(s, `"error"`) {
		t.Errorf("empty error should be omitted: %s", s)
	}
	if strings.Contains(s, "photo.jpg\",\"Path") {
		t.Errorf("Path leaked into JSON: %s", s)
	}
}
