package photometa_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/photometa"
	"github.com/simonhull/photometa/internal/exiftest"
)

// encodeJPEG returns a real 8x4 JPEG so the image header decodes too.
func encodeJPEG(t testing.TB) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// taggedTIFF is a camera-like EXIF block at 25°2'30"N 121°30'0"E.
func taggedTIFF(order binary.ByteOrder) []byte {
	return exiftest.New(order).
		IFD0(
			exiftest.ASCII(271, "TestCam"),
			exiftest.ASCII(272, "TC-1"),
			exiftest.Short(274, 6),
		).
		Exif(
			exiftest.Rational(37396, 50, 1),
			exiftest.ASCII(36867, "2024:05:01 09:59:58"),
		).
		GPS(
			exiftest.ASCII(1, "N"),
			exiftest.Rational(2, 25, 1, 2, 1, 30, 1),
			exiftest.ASCII(3, "E"),
			exiftest.Rational(4, 121, 1, 30, 1, 0, 1),
		).
		TIFF()
}

func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func get(t *testing.T, m *photometa.OrderedMap, key string) string {
	t.Helper()
	v, ok := m.Get(key)
	if !ok {
		t.Fatalf("missing %q in %v", key, m.Keys())
	}
	return v.String()
}

func TestOpen_JPEGWithGPS(t *testing.T) {
	path := writeFile(t, "photo.jpg", exiftest.WithExif(encodeJPEG(t), taggedTIFF(binary.LittleEndian)))

	rec, err := photometa.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rec.Error != "" {
		t.Errorf("Error = %q", rec.Error)
	}
	if rec.Format != photometa.FormatJPEG {
		t.Errorf("Format = %v, want JPEG", rec.Format)
	}
	if len(rec.Warnings) != 0 {
		t.Errorf("Warnings = %v", rec.Warnings)
	}

	exif := map[string]string{
		"相機品牌":   "TestCam",
		"相機型號":   "TC-1",
		"方向":     "順時針90度",
		"焦距":     "50mm",
		"原始拍攝時間": "2024:05:01 09:59:58",
	}
	for k, want := range exif {
		if got := get(t, &rec.EXIF, k); got != want {
			t.Errorf("exif %s = %q, want %q", k, got, want)
		}
	}

	if got := get(t, &rec.GPS, photometa.FieldLatitude); got != "25.041667" {
		t.Errorf("latitude = %s", got)
	}
	if got := get(t, &rec.GPS, photometa.FieldLongitude); got != "121.5" {
		t.Errorf("longitude = %s", got)
	}
	if got := get(t, &rec.GPS, photometa.FieldMapLink); got != "https://www.google.com/maps?q=25.041667,121.5" {
		t.Errorf("map link = %s", got)
	}
	if !rec.Location.Complete() {
		t.Error("Location incomplete")
	}

	if got := get(t, &rec.Basic, "圖片尺寸"); got != "8 x 4" {
		t.Errorf("圖片尺寸 = %s", got)
	}
	if got := get(t, &rec.Basic, "檔案名稱"); got != "photo.jpg" {
		t.Errorf("檔案名稱 = %s", got)
	}

	d := rec.Diagnostics
	if d.ExifFound == nil || !*d.ExifFound {
		t.Error("diagnostics exif_data_found should be true")
	}
	if d.GPSSource == nil || *d.GPSSource != "primary" {
		t.Errorf("gps_source = %v, want primary", d.GPSSource)
	}
	if d.SecondaryDecodeSucceeded == nil || !*d.SecondaryDecodeSucceeded {
		t.Errorf("secondary_success = %v, error %q", d.SecondaryDecodeSucceeded, d.SecondaryError)
	}
	if d.JPEGExifMarker == nil || !*d.JPEGExifMarker {
		t.Error("jpeg_exif_marker should be true")
	}
	if !strings.HasPrefix(d.FileHeader, "ffd8ffe1") {
		t.Errorf("file_header = %q", d.FileHeader)
	}
	if len(d.Suggestions) != 1 {
		t.Errorf("suggestions = %v, want only the EXIF ok line", d.Suggestions)
	}

	if len(rec.Raw["GPS"]) == 0 {
		t.Error("raw GPS section is empty")
	}
}

func TestOpen_BigEndianTIFF(t *testing.T) {
	path := writeFile(t, "photo.tif", taggedTIFF(binary.BigEndian))

	rec, err := photometa.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rec.Format != photometa.FormatTIFF {
		t.Errorf("Format = %v, want TIFF", rec.Format)
	}
	if got := get(t, &rec.EXIF, "相機品牌"); got != "TestCam" {
		t.Errorf("相機品牌 = %q", got)
	}
	if got := get(t, &rec.GPS, photometa.FieldLatitude); got != "25.041667" {
		t.Errorf("latitude = %s", got)
	}
}

func TestOpen_NoGPS(t *testing.T) {
	tiff := exiftest.New(binary.LittleEndian).
		IFD0(exiftest.ASCII(271, "TestCam")).
		TIFF()
	path := writeFile(t, "nogps.jpg", exiftest.WithExif(encodeJPEG(t), tiff))

	rec, err := photometa.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rec.GPS.Len() != 0 {
		t.Errorf("gps section = %v, want empty", rec.GPS.Keys())
	}
	d := rec.Diagnostics
	if d.GPSFound == nil || *d.GPSFound {
		t.Error("gps_data_found should be false")
	}
	if d.GPSSource != nil {
		t.Errorf("gps_source = %q, want null", *d.GPSSource)
	}
	if len(d.Suggestions) != 4 {
		t.Errorf("suggestions = %v, want no-GPS lines plus EXIF ok", d.Suggestions)
	}
}

func TestOpen_PNGWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.Gray{Y: 200})
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "shot.png", buf.Bytes())

	rec, err := photometa.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if rec.Format != photometa.FormatPNG {
		t.Errorf("Format = %v, want PNG", rec.Format)
	}
	if rec.EXIF.Len() != 0 || rec.GPS.Len() != 0 {
		t.Error("exif and gps sections should be empty")
	}
	if got := get(t, &rec.Basic, "圖片格式"); got != "PNG" {
		t.Errorf("圖片格式 = %s", got)
	}

	d := rec.Diagnostics
	if d.HasGeneralSupport == nil || *d.HasGeneralSupport {
		t.Error("has_general_support should be false")
	}
	if d.ExifFound != nil {
		t.Error("exif_data_found should be null when not attempted")
	}
	if d.SecondaryDecodeSucceeded == nil || *d.SecondaryDecodeSucceeded {
		t.Error("secondary_success should be false")
	}
	if d.JPEGExifMarker == nil || *d.JPEGExifMarker {
		t.Error("jpeg_exif_marker should be false")
	}
	if len(d.Suggestions) != 4 || d.Suggestions[0] != "此相片可能沒有 EXIF 資料" {
		t.Errorf("suggestions = %v", d.Suggestions)
	}

	// Secondary source failure is a warning.
	if len(rec.Warnings) == 0 {
		t.Error("expected a warning for the missing tag source")
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jpg")

	rec, err := photometa.Open(path)
	if err == nil {
		t.Fatal("Open() error = nil for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
	if rec == nil {
		t.Fatal("record should be returned with the error")
	}
	if rec.Error != "檔案不存在: "+path {
		t.Errorf("Error = %q", rec.Error)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"error":"檔案不存在: `)) {
		t.Errorf("json = %s", data)
	}
}

func TestOpen_Options(t *testing.T) {
	path := writeFile(t, "photo.jpg", exiftest.WithExif(encodeJPEG(t), taggedTIFF(binary.LittleEndian)))

	t.Run("unknown encoding", func(t *testing.T) {
		if _, err := photometa.Open(path, photometa.WithEncodings("klingon")); err == nil {
			t.Error("Open() should reject an unknown encoding")
		}
	})

	t.Run("precision and maps base", func(t *testing.T) {
		rec, err := photometa.Open(path,
			photometa.WithPrecision(3),
			photometa.WithMapsBaseURL("https://maps.example.com"),
		)
		if err != nil {
			t.Fatal(err)
		}
		if got := get(t, &rec.GPS, photometa.FieldLatitude); got != "25.042" {
			t.Errorf("latitude = %s", got)
		}
		if got := get(t, &rec.GPS, photometa.FieldMapLink); got != "https://maps.example.com?q=25.042,121.5" {
			t.Errorf("map link = %s", got)
		}
	})

	t.Run("strict parsing", func(t *testing.T) {
		bare := writeFile(t, "bare.jpg", encodeJPEG(t))
		rec, err := photometa.Open(bare, photometa.WithStrictParsing())
		if err == nil {
			t.Fatal("strict Open() should fail when a source could not read the file")
		}
		if rec == nil || rec.Error == "" {
			t.Error("strict failure should be recorded on the record")
		}
	})

	t.Run("ignore warnings", func(t *testing.T) {
		bare := writeFile(t, "bare.jpg", encodeJPEG(t))
		rec, err := photometa.Open(bare, photometa.WithIgnoreWarnings())
		if err != nil {
			t.Fatal(err)
		}
		if len(rec.Warnings) != 0 {
			t.Errorf("Warnings = %v", rec.Warnings)
		}
		if rec.Diagnostics.SecondaryError == "" {
			t.Error("diagnostics should still carry the source error")
		}
	})
}

func TestExtract(t *testing.T) {
	t.Run("primary only", func(t *testing.T) {
		rec := photometa.Extract(&photometa.PrimaryTags{
			General: photometa.TagDictionary{
				photometa.ID(37396): photometa.Int(50),
			},
		}, nil)
		if got := get(t, &rec.EXIF, "焦距"); got != "50mm" {
			t.Errorf("焦距 = %s", got)
		}
		if rec.Diagnostics.SecondaryDecodeSucceeded != nil {
			t.Error("secondary_success should be null when no secondary input")
		}
	})

	t.Run("secondary only GPS", func(t *testing.T) {
		rec := photometa.Extract(nil, photometa.SectionedDictionary{
			photometa.SectionGPS: {
				photometa.ID(1): photometa.Bytes([]byte("S")),
				photometa.ID(2): photometa.Tuple(photometa.Int(33), photometa.Int(1), photometa.Int(0)),
				photometa.ID(3): photometa.Bytes([]byte("W")),
				photometa.ID(4): photometa.Tuple(photometa.Int(70), photometa.Int(40), photometa.Int(0)),
			},
		})
		if got := get(t, &rec.GPS, photometa.FieldLatitude); got != "-33.016667" {
			t.Errorf("latitude = %s", got)
		}
		d := rec.Diagnostics
		if d.GPSSource == nil || *d.GPSSource != "secondary" {
			t.Errorf("gps_source = %v", d.GPSSource)
		}
		if d.GPSFound == nil || !*d.GPSFound {
			t.Error("gps_data_found should be true")
		}
		if d.ExifFound != nil {
			t.Error("exif_data_found should be null without primary input")
		}
	})

	t.Run("nothing", func(t *testing.T) {
		rec := photometa.Extract(nil, nil)
		if rec.EXIF.Len() != 0 || rec.GPS.Len() != 0 || len(rec.Raw) != 0 {
			t.Error("sections should be empty")
		}
		if len(rec.Diagnostics.Suggestions) != 4 {
			t.Errorf("suggestions = %v", rec.Diagnostics.Suggestions)
		}
	})

	t.Run("zero precision", func(t *testing.T) {
		rec := photometa.Extract(&photometa.PrimaryTags{
			GPS: photometa.TagDictionary{
				photometa.Name("GPSLatitude"): photometa.Tuple(photometa.Rat(40, 1), photometa.Rat(26, 1), photometa.Rat(46, 1)),
				photometa.Name("GPSLatitudeRef"): photometa.Text("N"),
			},
			HasGPS: true,
		}, nil, photometa.WithPrecision(0))
		if got := get(t, &rec.GPS, photometa.FieldLatitude); got != "40" {
			t.Errorf("latitude = %s, want 40", got)
		}
		if rec.Location.Latitude == nil || *rec.Location.Latitude != 40.44611111 {
			t.Errorf("Location.Latitude = %v, want internal precision", rec.Location.Latitude)
		}
	})

	t.Run("bad encoding falls back", func(t *testing.T) {
		rec := photometa.Extract(&photometa.PrimaryTags{
			General: photometa.TagDictionary{photometa.ID(271): photometa.Bytes([]byte("Canon\x00"))},
		}, nil, photometa.WithEncodings("klingon"))
		if got := get(t, &rec.EXIF, "相機品牌"); got != "Canon" {
			t.Errorf("相機品牌 = %s", got)
		}
		if len(rec.Warnings) != 1 || rec.Warnings[0].Stage != "config" {
			t.Errorf("Warnings = %v", rec.Warnings)
		}
	})
}
