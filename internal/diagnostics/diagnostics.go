// Package diagnostics records what an extraction found and derives
// guidance for the user from it.
package diagnostics

import (
	"bytes"
	"encoding/hex"

	"github.com/simonhull/photometa/internal/types"
)

// HeaderLength is the number of leading file bytes recorded.
const HeaderLength = 20

// app1 is the JPEG APP1 marker that carries EXIF.
var app1 = []byte{0xFF, 0xE1}

// Guidance lines.
var (
	// NoExif is shown when the primary source found no EXIF data.
	NoExif = []string{
		"此相片可能沒有 EXIF 資料",
		"可能是截圖或從網頁下載的圖片",
		"可能經過編輯軟體處理，EXIF 被移除",
		"建議使用原始相機拍攝的相片",
	}

	// NoGPS is shown when EXIF data exists but no GPS group was decoded.
	NoGPS = []string{
		"相片有 EXIF 資料但沒有 GPS 資訊",
		"可能拍攝時沒有啟用位置服務",
		"或 GPS 資料被手動移除",
	}

	// ExifOK is shown whenever EXIF data was found.
	ExifOK = "相片包含 EXIF 資料，可以正常提取"
)

// Input is everything the recorder observes about one extraction.
type Input struct {
	SecondaryErr       error
	HeaderErr          error
	GPSSource          string
	SecondarySections  []string
	Header             []byte
	ExifTagCount       int
	GeneralSupport     bool
	PrimaryAttempted   bool
	ExifFound          bool
	GPSFound           bool
	SecondaryAttempted bool
	HeaderAttempted    bool
}

// Record derives the diagnostics section from in. Checks that were not
// attempted stay nil.
func Record(in Input) types.Diagnostics {
	d := types.Diagnostics{
		HasGeneralSupport: ptr(in.GeneralSupport),
	}

	if in.PrimaryAttempted {
		d.ExifFound = ptr(in.ExifFound)
		d.ExifTagCount = ptr(in.ExifTagCount)
	}
	if in.PrimaryAttempted || in.GPSFound {
		d.GPSFound = ptr(in.GPSFound)
	}
	if in.GPSSource != "" {
		d.GPSSource = ptr(in.GPSSource)
	}

	if in.SecondaryAttempted {
		d.SecondaryDecodeSucceeded = ptr(in.SecondaryErr == nil)
		if in.SecondaryErr != nil {
			d.SecondaryError = in.SecondaryErr.Error()
		} else {
			d.SecondarySections = in.SecondarySections
		}
	}

	if in.HeaderAttempted {
		if in.HeaderErr != nil {
			d.HeaderCheckError = in.HeaderErr.Error()
		} else {
			header := in.Header[:min(len(in.Header), HeaderLength)]
			d.FileHeader = hex.EncodeToString(header)
			d.JPEGExifMarker = ptr(bytes.Contains(header, app1))
		}
	}

	d.Suggestions = Suggest(in.ExifFound, in.GPSFound)
	return d
}

// Suggest returns the guidance lines for the given findings.
func Suggest(exifFound, gpsFound bool) []string {
	var out []string
	if !exifFound {
		out = append(out, NoExif...)
	}
	if exifFound && !gpsFound {
		out = append(out, NoGPS...)
	}
	if exifFound {
		out = append(out, ExifOK)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
