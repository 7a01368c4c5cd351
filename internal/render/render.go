// Package render writes metadata records as JSON documents or as the
// sectioned text report shown by the CLI.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/simonhull/photometa/internal/types"
)

// View selects which sections the text report shows.
type View int

const (
	ViewAll View = iota
	ViewGPS
	ViewEXIF
	ViewBasic
	ViewRaw
	ViewDiagnostics
)

// Report headings.
const (
	Title         = "相片隱藏資訊提取器 - Photo Metadata Extractor"
	HeadingBasic  = "基本檔案資訊:"
	HeadingEXIF   = "EXIF 資訊:"
	HeadingGPS    = "GPS 資訊:"
	HeadingRaw    = "原始 EXIF 資料:"
	HeadingDiag   = "診斷資訊:"
	HeadingAdvice = "建議:"
	HeadingError  = "錯誤資訊:"

	EmptyEXIF = "沒有 EXIF 資訊"
	EmptyGPS  = "沒有 GPS 資訊"
	EmptyRaw  = "沒有原始資料"
)

var (
	rule      = strings.Repeat("=", 60)
	underline = strings.Repeat("-", 30)
)

// JSON writes rec as a JSON document. Non-ASCII text is written as is.
func JSON(w io.Writer, rec *types.MetadataRecord, pretty bool) error {
	data, err := Marshal(rec, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes rec with a trailing newline.
func Marshal(rec *types.MetadataRecord, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveJSON writes rec to path.
func SaveJSON(path string, rec *types.MetadataRecord, pretty bool) error {
	data, err := Marshal(rec, pretty)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Text writes the human-readable report for view.
func Text(w io.Writer, rec *types.MetadataRecord, view View) error {
	p := &printer{w: w}

	p.line(rule)
	p.line(Title)
	p.line(rule)

	switch view {
	case ViewGPS:
		p.section(HeadingGPS, &rec.GPS, EmptyGPS)
	case ViewEXIF:
		p.section(HeadingEXIF, &rec.EXIF, EmptyEXIF)
	case ViewBasic:
		p.section(HeadingBasic, &rec.Basic, "")
	case ViewRaw:
		p.raw(rec.Raw)
	case ViewDiagnostics:
		p.diagnostics(&rec.Diagnostics)
	default:
		p.section(HeadingBasic, &rec.Basic, "")
		p.line("")
		p.section(HeadingEXIF, &rec.EXIF, EmptyEXIF)
		p.line("")
		p.section(HeadingGPS, &rec.GPS, EmptyGPS)
		p.line("")
		p.raw(rec.Raw)
		p.line("")
		p.diagnostics(&rec.Diagnostics)
	}

	if rec.Error != "" {
		p.line("\n" + rule)
		p.line(HeadingError)
		p.line("錯誤: " + rec.Error)
	}
	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) section(heading string, m *types.OrderedMap, empty string) {
	p.line(heading)
	p.line(underline)
	if m.Len() == 0 && empty != "" {
		p.line(empty)
		return
	}
	for k, v := range m.All() {
		p.line(k + ": " + v.String())
	}
}

func (p *printer) raw(raw map[string]map[string]types.DecodedValue) {
	p.line(HeadingRaw)
	p.line(underline)
	if len(raw) == 0 {
		p.line(EmptyRaw)
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		p.err = fmt.Errorf("encode raw section: %w", err)
		return
	}
	p.line(strings.TrimRight(buf.String(), "\n"))
}

// diagnostics prints the recorded checks followed by the guidance lines.
// Checks that were not attempted are skipped.
func (p *printer) diagnostics(d *types.Diagnostics) {
	p.line(HeadingDiag)
	p.line(underline)
	p.line("一般 EXIF 支援: " + flag(d.HasGeneralSupport))
	if d.ExifFound != nil {
		p.line("發現 EXIF 資料: " + flag(d.ExifFound))
	}
	if d.ExifTagCount != nil {
		p.line("EXIF 標籤數量: " + strconv.Itoa(*d.ExifTagCount))
	}
	if d.GPSFound != nil {
		p.line("發現 GPS 資料: " + flag(d.GPSFound))
	}
	if d.GPSSource != nil {
		p.line("GPS 資料來源: " + *d.GPSSource)
	}
	if d.SecondaryDecodeSucceeded != nil {
		p.line("次要來源成功: " + flag(d.SecondaryDecodeSucceeded))
	}
	if d.JPEGExifMarker != nil {
		p.line("JPEG EXIF 標記: " + flag(d.JPEGExifMarker))
	}
	if d.FileHeader != "" {
		p.line("檔案頭部: " + d.FileHeader)
	}
	if d.HeaderCheckError != "" {
		p.line("檔案頭部錯誤: " + d.HeaderCheckError)
	}
	if len(d.SecondarySections) > 0 {
		p.line("次要來源區段: " + strings.Join(d.SecondarySections, ", "))
	}
	if d.SecondaryError != "" {
		p.line("次要來源錯誤: " + d.SecondaryError)
	}

	p.line("")
	p.line(HeadingAdvice)
	for _, s := range d.Suggestions {
		p.line("• " + s)
	}
}

func flag(b *bool) string {
	if b == nil {
		return "未知"
	}
	return strconv.FormatBool(*b)
}
