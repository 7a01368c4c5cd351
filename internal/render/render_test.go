package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/photometa/internal/types"
)

func sample() *types.MetadataRecord {
	rec := types.NewRecord("a.jpg")
	rec.Basic.Set("檔案名稱", types.Str("a.jpg"))
	rec.EXIF.Set("相機品牌", types.Str("Canon"))
	rec.EXIF.Set("焦距", types.Str("50mm"))
	rec.GPS.Set(types.FieldLatitude, types.Num(25.5))
	rec.GPS.Set(types.FieldLongitude, types.Unavailable())
	rec.Raw["0th"] = map[string]types.DecodedValue{"271": types.Str("Canon")}
	yes, no, count, source := true, false, 2, "primary"
	rec.Diagnostics = types.Diagnostics{
		HasGeneralSupport:        &yes,
		ExifFound:                &yes,
		ExifTagCount:             &count,
		GPSFound:                 &no,
		GPSSource:                &source,
		SecondaryDecodeSucceeded: &yes,
		SecondarySections:        []string{"0th", "Exif"},
		FileHeader:               "ffd8ffe1",
		JPEGExifMarker:           &yes,
		Suggestions:              []string{"相片有 EXIF 資料但沒有 GPS 資訊", "相片包含 EXIF 資料，可以正常提取"},
	}
	return rec
}

func TestJSON(t *testing.T) {
	var compact, pretty bytes.Buffer
	if err := JSON(&compact, sample(), false); err != nil {
		t.Fatal(err)
	}
	if err := JSON(&pretty, sample(), true); err != nil {
		t.Fatal(err)
	}

	if strings.Count(strings.TrimSpace(compact.String()), "\n") != 0 {
		t.Errorf("compact output spans lines: %q", compact.String())
	}
	if !strings.Contains(pretty.String(), "\n  \"exif_data\": {") {
		t.Errorf("pretty output not indented: %s", pretty.String())
	}
	// Non-ASCII text stays readable.
	if !strings.Contains(compact.String(), "相機品牌") {
		t.Errorf("labels escaped: %s", compact.String())
	}
	if !strings.Contains(compact.String(), `"經度 (十進位)":null`) {
		t.Errorf("unavailable value not null: %s", compact.String())
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(compact.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := doc["error"]; ok {
		t.Error("empty error should be omitted")
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := SaveJSON(path, sample(), true); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var rec types.MetadataRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v, _ := rec.EXIF.Get("焦距"); v.String() != "50mm" {
		t.Errorf("round trip 焦距 = %q", v.String())
	}

	if err := SaveJSON(filepath.Join(t.TempDir(), "missing", "out.json"), sample(), true); err == nil {
		t.Error("SaveJSON() into a missing directory should fail")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		view    View
		want    []string
		notWant []string
	}{
		{
			name: "all",
			view: ViewAll,
			want: []string{Title, HeadingBasic, HeadingEXIF, HeadingGPS, HeadingRaw, HeadingDiag, HeadingAdvice,
				"相機品牌: Canon", "緯度 (十進位): 25.5", "經度 (十進位): null", `"271": "Canon"`,
				"• 相片包含 EXIF 資料，可以正常提取"},
		},
		{
			name:    "gps",
			view:    ViewGPS,
			want:    []string{HeadingGPS, "緯度 (十進位): 25.5"},
			notWant: []string{HeadingEXIF, HeadingBasic, HeadingRaw},
		},
		{
			name:    "exif",
			view:    ViewEXIF,
			want:    []string{HeadingEXIF, "焦距: 50mm"},
			notWant: []string{HeadingGPS},
		},
		{
			name:    "basic",
			view:    ViewBasic,
			want:    []string{HeadingBasic, "檔案名稱: a.jpg"},
			notWant: []string{HeadingEXIF},
		},
		{
			name:    "raw",
			view:    ViewRaw,
			want:    []string{HeadingRaw, `"0th"`},
			notWant: []string{HeadingBasic},
		},
		{
			name: "diagnostics",
			view: ViewDiagnostics,
			want: []string{HeadingDiag, "一般 EXIF 支援: true", "EXIF 標籤數量: 2", "發現 GPS 資料: false",
				"GPS 資料來源: primary", "JPEG EXIF 標記: true", "檔案頭部: ffd8ffe1", "次要來源區段: 0th, Exif",
				HeadingAdvice, "• 相片有 EXIF 資料但沒有 GPS 資訊"},
			notWant: []string{HeadingEXIF, HeadingRaw, "次要來源錯誤"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Text(&buf, sample(), tt.view); err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestText_EmptyAndError(t *testing.T) {
	rec := types.NewRecord("x.png")
	rec.Error = "檔案不存在: x.png"

	var buf bytes.Buffer
	if err := Text(&buf, rec, ViewAll); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{EmptyEXIF, EmptyGPS, EmptyRaw, HeadingError, "錯誤: 檔案不存在: x.png"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestText_DiagnosticsNotAttempted(t *testing.T) {
	rec := types.NewRecord("x.bin")
	rec.Diagnostics.SecondaryError = "unsupported format"
	rec.Diagnostics.Suggestions = []string{"此相片可能沒有 EXIF 資料"}

	var buf bytes.Buffer
	if err := Text(&buf, rec, ViewDiagnostics); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"一般 EXIF 支援: 未知", "次要來源錯誤: unsupported format", "• 此相片可能沒有 EXIF 資料"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	for _, s := range []string{"發現 EXIF 資料", "EXIF 標籤數量", "檔案頭部:"} {
		if strings.Contains(out, s) {
			t.Errorf("output should not contain %q:\n%s", s, out)
		}
	}
}
