package types

import (
	"io"

	"github.com/simonhull/photometa/internal/binary"
)

// Format represents the detected image container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF/EXIF files.
	FormatJPEG
	// FormatTIFF represents TIFF files and TIFF-based raw formats.
	FormatTIFF
	// FormatPNG represents PNG files.
	FormatPNG
	// FormatGIF represents GIF files.
	FormatGIF
	// FormatWebP represents WebP files.
	FormatWebP
	// FormatHEIC represents HEIF/HEIC files.
	FormatHEIC
)

// String returns the conventional format name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatTIFF:
		return "TIFF"
	case FormatPNG:
		return "PNG"
	case FormatGIF:
		return "GIF"
	case FormatWebP:
		return "WEBP"
	case FormatHEIC:
		return "HEIC"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg", ".jpe"}
	case FormatTIFF:
		return []string{".tif", ".tiff", ".dng", ".nef", ".cr2", ".arw"}
	case FormatPNG:
		return []string{".png"}
	case FormatGIF:
		return []string{".gif"}
	case FormatWebP:
		return []string{".webp"}
	case FormatHEIC:
		return []string{".heic", ".heif"}
	default:
		return nil
	}
}

// HasExifSupport reports whether tag sources can read EXIF from this
// format.
func (f Format) HasExifSupport() bool {
	return f == FormatJPEG || f == FormatTIFF
}

// DetectFormat determines the image format by examining magic bytes.
//
// Detection is based on file signatures at the beginning of the file and
// does not validate the rest of the structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	// Every supported signature fits in 12 bytes; GIF needs 6.
	if size < 6 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	n := min(size, 12)
	magic := make([]byte, n)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	// JPEG SOI followed by any marker
	if magic[0] == 0xFF && magic[1] == 0xD8 && magic[2] == 0xFF {
		return FormatJPEG, nil
	}

	// TIFF, little- or big-endian
	if string(magic[:4]) == "II*\x00" || string(magic[:4]) == "MM\x00*" {
		return FormatTIFF, nil
	}

	if len(magic) >= 8 && string(magic[:8]) == "\x89PNG\r\n\x1a\n" {
		return FormatPNG, nil
	}

	if string(magic[:6]) == "GIF87a" || string(magic[:6]) == "GIF89a" {
		return FormatGIF, nil
	}

	if len(magic) >= 12 && string(magic[:4]) == "RIFF" && string(magic[8:12]) == "WEBP" {
		return FormatWebP, nil
	}

	// ISO base media file: size(4) "ftyp" brand(4)
	if len(magic) >= 12 && string(magic[4:8]) == "ftyp" {
		switch string(magic[8:12]) {
		case "heic", "heix", "hevc", "hevx", "mif1", "msf1", "heim", "heis":
			return FormatHEIC, nil
		}
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file brand",
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
