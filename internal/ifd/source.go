package ifd

import (
	"errors"
	"io"

	"github.com/simonhull/photometa/internal/binary"
	"github.com/simonhull/photometa/internal/registry"
	"github.com/simonhull/photometa/internal/types"
)

// ErrNoExif is returned when a JPEG carries no APP1 Exif segment.
var ErrNoExif = errors.New("no exif segment")

// JPEG markers.
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
)

var exifHeader = []byte("Exif\x00\x00")

// Source is the IFD-walking secondary tag source.
type Source struct{}

func init() {
	src := &Source{}
	registry.RegisterSecondary(types.FormatJPEG, src)
	registry.RegisterSecondary(types.FormatTIFF, src)
}

// LoadSecondary walks the IFDs of a JPEG or TIFF file.
func (s *Source) LoadSecondary(r io.ReaderAt, size int64, path string) (types.SectionedDictionary, error) {
	sr := binary.NewSafeReader(r, size, path)

	start, length, err := Locate(sr)
	if err != nil {
		return nil, err
	}
	return Walk(binary.NewSafeReader(io.NewSectionReader(r, start, length), length, path))
}

// Locate returns the offset and length of the TIFF stream: the whole
// file for a TIFF, the payload of the APP1 Exif segment for a JPEG.
func Locate(sr *binary.SafeReader) (start, length int64, err error) {
	magic, err := sr.Bytes(0, 4, "file magic bytes")
	if err != nil {
		return 0, 0, err
	}
	if _, ok := binary.TIFFOrder(magic); ok {
		return 0, sr.Size(), nil
	}
	if magic[0] != 0xFF || magic[1] != markerSOI {
		return 0, 0, &types.UnsupportedFormatError{Path: sr.Path(), Reason: "not a JPEG or TIFF file"}
	}

	off := int64(2)
	for {
		prefix, err := binary.ReadBE[uint8](sr, off, "JPEG marker prefix")
		if err != nil {
			return 0, 0, ErrNoExif
		}
		if prefix != 0xFF {
			return 0, 0, &types.CorruptedFileError{
				Path:   sr.Path(),
				Reason: "expected JPEG marker",
				Offset: off,
			}
		}
		marker, err := binary.ReadBE[uint8](sr, off+1, "JPEG marker")
		if err != nil {
			return 0, 0, ErrNoExif
		}

		switch {
		case marker == 0xFF:
			// Fill byte.
			off++
			continue
		case marker == markerEOI || marker == markerSOS:
			return 0, 0, ErrNoExif
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			off += 2
			continue
		}

		segLen, err := binary.ReadBE[uint16](sr, off+2, "JPEG segment length")
		if err != nil {
			return 0, 0, ErrNoExif
		}
		if segLen < 2 {
			return 0, 0, &types.CorruptedFileError{
				Path:   sr.Path(),
				Reason: "JPEG segment length below 2",
				Offset: off + 2,
			}
		}

		payload := off + 4
		if marker == markerAPP1 && segLen >= 2+6 {
			hdr, err := sr.Bytes(payload, len(exifHeader), "APP1 header")
			if err == nil && string(hdr) == string(exifHeader) {
				start = payload + int64(len(exifHeader))
				length = min(int64(segLen)-2-int64(len(exifHeader)), sr.Size()-start)
				return start, length, nil
			}
		}
		off += 2 + int64(segLen)
	}
}
