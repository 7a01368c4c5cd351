// Package fileinfo collects the basic section of a metadata record: file
// system facts and the image's container-level properties.
package fileinfo

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	// Decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/simonhull/photometa/internal/types"
)

// Field names of the basic section.
const (
	FieldName       = "檔案名稱"
	FieldPath       = "檔案路徑"
	FieldSize       = "檔案大小"
	FieldCreated    = "建立時間"
	FieldModified   = "修改時間"
	FieldAccessed   = "存取時間"
	FieldFormat     = "圖片格式"
	FieldMode       = "圖片模式"
	FieldDimensions = "圖片尺寸"
	FieldPixels     = "圖片大小"
)

// TimeLayout formats file timestamps in local time.
const TimeLayout = "2006-01-02 15:04:05"

var printer = message.NewPrinter(language.English)

// Stat returns the file system half of the basic section.
//
// The creation time is the inode change time where the platform has no
// birth time.
func Stat(path string) (types.OrderedMap, error) {
	var m types.OrderedMap

	abs, err := filepath.Abs(path)
	if err != nil {
		return m, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return m, err
	}
	ts, err := times.Stat(path)
	if err != nil {
		return m, err
	}

	created := ts.ModTime()
	switch {
	case ts.HasChangeTime():
		created = ts.ChangeTime()
	case ts.HasBirthTime():
		created = ts.BirthTime()
	}

	m.Set(FieldName, types.Str(info.Name()))
	m.Set(FieldPath, types.Str(abs))
	m.Set(FieldSize, types.Str(Size(info.Size())))
	m.Set(FieldCreated, types.Str(Timestamp(created)))
	m.Set(FieldModified, types.Str(Timestamp(info.ModTime())))
	m.Set(FieldAccessed, types.Str(Timestamp(ts.AccessTime())))
	return m, nil
}

// Image decodes the image header from r and appends format, mode and
// dimensions to m.
func Image(m *types.OrderedMap, r io.Reader) error {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("decode image header: %w", err)
	}

	m.Set(FieldFormat, types.Str(strings.ToUpper(format)))
	m.Set(FieldMode, types.Str(Mode(cfg.ColorModel)))
	m.Set(FieldDimensions, types.Str(fmt.Sprintf("%d x %d", cfg.Width, cfg.Height)))
	m.Set(FieldPixels, types.Str(printer.Sprintf("%d pixels", cfg.Width*cfg.Height)))
	return nil
}

// Size renders a byte count as "1,234 bytes (1.2 KB)".
func Size(n int64) string {
	return printer.Sprintf("%d bytes (%s)", n, HumanSize(n))
}

// HumanSize renders n with one decimal in the largest unit below 1024.
func HumanSize(n int64) string {
	v := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f TB", v)
}

// Timestamp formats t in local time.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// Mode names a color model the way common imaging tools do.
func Mode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.YCbCrModel, color.NYCbCrAModel:
		return "RGB"
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model:
		return "RGBA"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	}
	return "unknown"
}

// Header reads up to n leading bytes of r.
func Header(r io.ReaderAt, size int64, n int) ([]byte, error) {
	buf := make([]byte, min(int64(n), size))
	if len(buf) == 0 {
		return buf, nil
	}
	read, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return buf[:read], nil
}
