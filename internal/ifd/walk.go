// Package ifd implements the low-level tag source: a direct walker over
// the TIFF image file directories of a JPEG or TIFF file.
//
// Every directory is returned as its own section keyed by numeric tag id.
// Nothing is interpreted beyond the TIFF field types, so this source still
// works on files whose maker notes or vendor tags confuse the high-level
// source.
package ifd

import (
	"fmt"
	"math"

	"github.com/simonhull/photometa/internal/binary"
	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/types"
)

// TIFF field types.
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeSByte     = 6
	typeUndefined = 7
	typeSShort    = 8
	typeSLong     = 9
	typeSRational = 10
	typeFloat     = 11
	typeDouble    = 12
)

// maxEntries bounds the entry count of a single directory.
const maxEntries = 1024

var typeSizes = map[uint16]int64{
	typeByte:      1,
	typeASCII:     1,
	typeShort:     2,
	typeLong:      4,
	typeRational:  8,
	typeSByte:     1,
	typeUndefined: 1,
	typeSShort:    2,
	typeSLong:     4,
	typeSRational: 8,
	typeFloat:     4,
	typeDouble:    8,
}

// walker carries the state of one TIFF walk.
type walker struct {
	sr      *binary.SafeReader
	endian  binary.Endianness
	visited map[int64]bool
}

// Walk decodes the TIFF stream readable through sr, which must start at
// the TIFF header.
//
// IFD0 must decode; a broken Exif, GPS, Interop or IFD1 directory is
// dropped and the remaining sections are still returned.
func Walk(sr *binary.SafeReader) (types.SectionedDictionary, error) {
	header, err := sr.Bytes(0, 8, "TIFF header")
	if err != nil {
		return nil, err
	}
	endian, ok := binary.TIFFOrder(header)
	if !ok {
		return nil, &types.CorruptedFileError{Path: sr.Path(), Reason: "invalid TIFF header"}
	}

	w := &walker{sr: sr, endian: endian, visited: make(map[int64]bool)}
	ifd0Off := int64(endian.Uint32(header[4:8]))

	ifd0, next, err := w.dir(ifd0Off, "IFD0")
	if err != nil {
		return nil, err
	}
	sections := types.SectionedDictionary{types.Section0th: ifd0}

	exif := w.sub(sections, ifd0, catalog.TagExifIFD, types.SectionExif)
	w.sub(sections, ifd0, catalog.TagGPSIFD, types.SectionGPS)
	if exif != nil {
		w.sub(sections, exif, catalog.TagInteropIFD, types.SectionInterop)
	}

	if next != 0 {
		if ifd1, _, err := w.dir(next, "IFD1"); err == nil && ifd1.Len() > 0 {
			sections[types.Section1st] = ifd1
		}
	}
	return sections, nil
}

// sub follows the pointer tag in parent and stores the directory it
// points at under name.
func (w *walker) sub(sections types.SectionedDictionary, parent types.TagDictionary, tag uint16, name string) types.TagDictionary {
	ptr, ok := parent.Get(types.ID(tag))
	if !ok {
		return nil
	}
	off, ok := ptr.AsInt()
	if !ok || off <= 0 {
		return nil
	}
	d, _, err := w.dir(off, name+" IFD")
	if err != nil {
		return nil
	}
	sections[name] = d
	return d
}

// dir decodes the directory at off and returns its entries and the offset
// of the next directory.
func (w *walker) dir(off int64, what string) (types.TagDictionary, int64, error) {
	if w.visited[off] {
		return nil, 0, &types.CorruptedFileError{
			Path:   w.sr.Path(),
			Reason: what + " forms a loop",
			Offset: off,
		}
	}
	w.visited[off] = true

	r := binary.NewReader(w.sr, off, w.endian)
	count, err := binary.ReadValue[uint16](r, what+" entry count")
	if err != nil {
		return nil, 0, err
	}
	if count > maxEntries {
		return nil, 0, &types.CorruptedFileError{
			Path:   w.sr.Path(),
			Reason: fmt.Sprintf("%s has %d entries", what, count),
			Offset: off,
		}
	}

	d := make(types.TagDictionary, count)
	for range count {
		cr := binary.NewChainReader(r)
		tag := binary.ReadChained[uint16](cr, what+" tag")
		typ := binary.ReadChained[uint16](cr, what+" type")
		n := binary.ReadChained[uint32](cr, what+" count")
		inline := cr.Raw(4, what+" value")
		if err := cr.Error(); err != nil {
			return nil, 0, err
		}

		// Unknown types and unreadable values are skipped.
		if v, ok := w.value(typ, n, inline); ok {
			d[types.ID(tag)] = v
		}
	}

	next, err := binary.ReadValue[uint32](r, what+" next offset")
	if err != nil {
		// A truncated link leaves the directory itself intact.
		return d, 0, nil
	}
	return d, int64(next), nil
}

// value decodes one entry's payload.
func (w *walker) value(typ uint16, count uint32, inline []byte) (types.RawValue, bool) {
	size, ok := typeSizes[typ]
	if !ok || count == 0 {
		return types.RawValue{}, false
	}

	total := size * int64(count)
	data := inline[:min(total, 4)]
	if total > 4 {
		off := int64(w.endian.Uint32(inline))
		if !w.sr.Contains(off, total) {
			return types.RawValue{}, false
		}
		var err error
		if data, err = w.sr.Bytes(off, int(total), "tag value"); err != nil {
			return types.RawValue{}, false
		}
	}

	switch typ {
	case typeASCII:
		// Drop the terminator; embedded bytes are left to the text decoder.
		if data[len(data)-1] == 0 {
			data = data[:len(data)-1]
		}
		return types.Bytes(data), true
	case typeUndefined:
		return types.Bytes(data), true
	}

	items := make([]types.RawValue, count)
	for i := range items {
		items[i] = w.element(typ, data[int64(i)*size:])
	}
	if len(items) == 1 {
		return items[0], true
	}
	return types.Tuple(items...), true
}

func (w *walker) element(typ uint16, b []byte) types.RawValue {
	e := w.endian
	switch typ {
	case typeByte:
		return types.Int(int64(b[0]))
	case typeSByte:
		return types.Int(int64(int8(b[0])))
	case typeShort:
		return types.Int(int64(e.Uint16(b)))
	case typeSShort:
		return types.Int(int64(int16(e.Uint16(b))))
	case typeLong:
		return types.Int(int64(e.Uint32(b)))
	case typeSLong:
		return types.Int(int64(int32(e.Uint32(b))))
	case typeRational:
		return types.Rat(int64(e.Uint32(b)), int64(e.Uint32(b[4:])))
	case typeSRational:
		return types.Rat(int64(int32(e.Uint32(b))), int64(int32(e.Uint32(b[4:]))))
	case typeFloat:
		return types.Float(float64(math.Float32frombits(e.Uint32(b))))
	default:
		return types.Float(math.Float64frombits(e.Uint64(b)))
	}
}
