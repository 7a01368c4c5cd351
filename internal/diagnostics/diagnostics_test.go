package diagnostics

import (
	"errors"
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name      string
		exif, gps bool
		want      []string
	}{
		{"nothing", false, false, NoExif},
		{"gps without exif", false, true, NoExif},
		{"exif without gps", true, false, append(slices.Clone(NoGPS), ExifOK)},
		{"exif and gps", true, true, []string{ExifOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Suggest(tt.exif, tt.gps); !slices.Equal(got, tt.want) {
				t.Errorf("Suggest(%v, %v) = %v, want %v", tt.exif, tt.gps, got, tt.want)
			}
		})
	}

	if len(NoExif) != 4 || len(NoGPS) != 3 {
		t.Errorf("guidance sizes = %d, %d; want 4, 3", len(NoExif), len(NoGPS))
	}
}

func TestRecord_NotAttempted(t *testing.T) {
	d := Record(Input{})

	if d.HasGeneralSupport == nil || *d.HasGeneralSupport {
		t.Errorf("HasGeneralSupport = %v, want false", d.HasGeneralSupport)
	}
	if d.ExifFound != nil || d.ExifTagCount != nil || d.GPSFound != nil {
		t.Error("primary fields should be nil when not attempted")
	}
	if d.SecondaryDecodeSucceeded != nil {
		t.Error("secondary flag should be nil when not attempted")
	}
	if d.JPEGExifMarker != nil || d.FileHeader != "" {
		t.Error("header fields should be empty when not attempted")
	}
	if !slices.Equal(d.Suggestions, NoExif) {
		t.Errorf("Suggestions = %v", d.Suggestions)
	}
}

func TestRecord_Full(t *testing.T) {
	header := []byte{
		0xFF, 0xD8, 0xFF, 0xE1, 0x12, 0x34, 'E', 'x', 'i', 'f', 0x00, 0x00,
		'I', 'I', '*', 0x00, 0x08, 0x00, 0x00, 0x00, 0xAA, 0xBB,
	}
	d := Record(Input{
		GeneralSupport:     true,
		PrimaryAttempted:   true,
		ExifFound:          true,
		ExifTagCount:       42,
		GPSFound:           true,
		GPSSource:          "secondary",
		SecondaryAttempted: true,
		SecondarySections:  []string{"0th", "Exif", "GPS"},
		HeaderAttempted:    true,
		Header:             header,
	})

	if !*d.HasGeneralSupport || !*d.ExifFound || *d.ExifTagCount != 42 || !*d.GPSFound {
		t.Errorf("primary fields = %+v", d)
	}
	if d.GPSSource == nil || *d.GPSSource != "secondary" {
		t.Errorf("GPSSource = %v", d.GPSSource)
	}
	if d.SecondaryDecodeSucceeded == nil || !*d.SecondaryDecodeSucceeded {
		t.Error("SecondaryDecodeSucceeded should be true")
	}
	if !slices.Equal(d.SecondarySections, []string{"0th", "Exif", "GPS"}) {
		t.Errorf("SecondarySections = %v", d.SecondarySections)
	}
	if d.FileHeader != "ffd8ffe1123445786966000049492a0008000000" {
		t.Errorf("FileHeader = %q", d.FileHeader)
	}
	if len(d.FileHeader) != 2*HeaderLength {
		t.Errorf("FileHeader length = %d, want %d", len(d.FileHeader), 2*HeaderLength)
	}
	if d.JPEGExifMarker == nil || !*d.JPEGExifMarker {
		t.Error("JPEGExifMarker should be true")
	}
	if !slices.Equal(d.Suggestions, []string{ExifOK}) {
		t.Errorf("Suggestions = %v", d.Suggestions)
	}
}

func TestRecord_Failures(t *testing.T) {
	d := Record(Input{
		PrimaryAttempted:   true,
		ExifFound:          true,
		SecondaryAttempted: true,
		SecondaryErr:       errors.New("no exif segment"),
		HeaderAttempted:    true,
		HeaderErr:          errors.New("permission denied"),
	})

	if d.SecondaryDecodeSucceeded == nil || *d.SecondaryDecodeSucceeded {
		t.Error("SecondaryDecodeSucceeded should be false")
	}
	if d.SecondaryError != "no exif segment" {
		t.Errorf("SecondaryError = %q", d.SecondaryError)
	}
	if d.HeaderCheckError != "permission denied" || d.JPEGExifMarker != nil {
		t.Errorf("header = %q, %v", d.HeaderCheckError, d.JPEGExifMarker)
	}
	if d.GPSFound == nil || *d.GPSFound {
		t.Error("GPSFound should be recorded as false")
	}
	want := append(slices.Clone(NoGPS), ExifOK)
	if !slices.Equal(d.Suggestions, want) {
		t.Errorf("Suggestions = %v", d.Suggestions)
	}
}

func TestRecord_PNGHeader(t *testing.T) {
	d := Record(Input{HeaderAttempted: true, Header: []byte("\x89PNG\r\n\x1a\n")})
	if d.JPEGExifMarker == nil || *d.JPEGExifMarker {
		t.Error("PNG header should not carry the APP1 marker")
	}
	if d.FileHeader != "89504e470d0a1a0a" {
		t.Errorf("FileHeader = %q", d.FileHeader)
	}
}
