// Package exiftest builds small EXIF fixtures (TIFF streams and JPEG files
// carrying them) for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"slices"
)

// TIFF field types.
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
)

// Field is one IFD entry.
type Field struct {
	raw    []byte
	values []uint32
	Tag    uint16
	Type   uint16
}

// ASCII returns a NUL-terminated ASCII field.
func ASCII(tag uint16, s string) Field {
	return Field{Tag: tag, Type: TypeASCII, raw: append([]byte(s), 0)}
}

// Undefined returns an UNDEFINED field holding b verbatim.
func Undefined(tag uint16, b []byte) Field {
	return Field{Tag: tag, Type: TypeUndefined, raw: b}
}

// Bytes returns a BYTE field.
func Bytes(tag uint16, b ...byte) Field {
	return Field{Tag: tag, Type: TypeByte, raw: b}
}

// Short returns a SHORT field.
func Short(tag uint16, v ...uint16) Field {
	f := Field{Tag: tag, Type: TypeShort}
	for _, x := range v {
		f.values = append(f.values, uint32(x))
	}
	return f
}

// Long returns a LONG field.
func Long(tag uint16, v ...uint32) Field {
	return Field{Tag: tag, Type: TypeLong, values: v}
}

// Rational returns a RATIONAL field from numerator, denominator pairs.
func Rational(tag uint16, pairs ...uint32) Field {
	return Field{Tag: tag, Type: TypeRational, values: pairs}
}

func (f Field) count() uint32 {
	switch f.Type {
	case TypeShort, TypeLong:
		return uint32(len(f.values))
	case TypeRational:
		return uint32(len(f.values) / 2)
	default:
		return uint32(len(f.raw))
	}
}

func (f Field) encode(order binary.ByteOrder) []byte {
	switch f.Type {
	case TypeShort:
		out := make([]byte, 2*len(f.values))
		for i, v := range f.values {
			order.PutUint16(out[2*i:], uint16(v))
		}
		return out
	case TypeLong, TypeRational:
		out := make([]byte, 4*len(f.values))
		for i, v := range f.values {
			order.PutUint32(out[4*i:], v)
		}
		return out
	default:
		return f.raw
	}
}

// Builder assembles a TIFF stream with IFD0 and optional Exif, GPS,
// Interop and IFD1 directories.
type Builder struct {
	order   binary.ByteOrder
	ifd0    []Field
	exif    []Field
	gps     []Field
	interop []Field
	ifd1    []Field
}

// New returns a Builder using the given byte order.
func New(order binary.ByteOrder) *Builder {
	return &Builder{order: order}
}

// IFD0 appends fields to the primary image directory.
func (b *Builder) IFD0(fields ...Field) *Builder {
	b.ifd0 = append(b.ifd0, fields...)
	return b
}

// Exif appends fields to the Exif sub-IFD.
func (b *Builder) Exif(fields ...Field) *Builder {
	b.exif = append(b.exif, fields...)
	return b
}

// GPS appends fields to the GPS sub-IFD.
func (b *Builder) GPS(fields ...Field) *Builder {
	b.gps = append(b.gps, fields...)
	return b
}

// Interop appends fields to the interoperability sub-IFD.
func (b *Builder) Interop(fields ...Field) *Builder {
	b.interop = append(b.interop, fields...)
	return b
}

// IFD1 appends fields to the thumbnail directory.
func (b *Builder) IFD1(fields ...Field) *Builder {
	b.ifd1 = append(b.ifd1, fields...)
	return b
}

// Pointer tags.
const (
	tagExifIFD    = 34665
	tagGPSIFD     = 34853
	tagInteropIFD = 40965
)

// TIFF returns the encoded TIFF stream.
func (b *Builder) TIFF() []byte {
	ifd0 := slices.Clone(b.ifd0)
	exif := slices.Clone(b.exif)

	// Pointer values are patched once offsets are known.
	if len(b.interop) > 0 {
		exif = append(exif, Long(tagInteropIFD, 0))
	}
	if len(exif) > 0 {
		ifd0 = append(ifd0, Long(tagExifIFD, 0))
	}
	if len(b.gps) > 0 {
		ifd0 = append(ifd0, Long(tagGPSIFD, 0))
	}

	dirs := [][]Field{ifd0, exif, b.interop, b.gps, b.ifd1}
	offsets := make([]uint32, len(dirs))
	next := uint32(8)
	for i, d := range dirs {
		if len(d) == 0 && i != 0 {
			continue
		}
		offsets[i] = next
		next += b.size(d)
	}

	patch := func(fields []Field, tag uint16, off uint32) {
		for i := range fields {
			if fields[i].Tag == tag {
				fields[i] = Long(tag, off)
			}
		}
	}
	patch(exif, tagInteropIFD, offsets[2])
	patch(ifd0, tagExifIFD, offsets[1])
	patch(ifd0, tagGPSIFD, offsets[3])
	dirs[0], dirs[1] = ifd0, exif

	var buf bytes.Buffer
	if b.order == binary.LittleEndian {
		buf.WriteString("II")
	} else {
		buf.WriteString("MM")
	}
	buf.Write(b.u16(42))
	buf.Write(b.u32(8))

	for i, d := range dirs {
		if len(d) == 0 && i != 0 {
			continue
		}
		var nextIFD uint32
		if i == 0 && len(b.ifd1) > 0 {
			nextIFD = offsets[4]
		}
		b.writeIFD(&buf, d, offsets[i], nextIFD)
	}
	return buf.Bytes()
}

func (b *Builder) size(fields []Field) uint32 {
	n := uint32(2 + 12*len(fields) + 4)
	for _, f := range fields {
		if data := f.encode(b.order); len(data) > 4 {
			n += uint32(len(data) + len(data)%2)
		}
	}
	return n
}

func (b *Builder) writeIFD(buf *bytes.Buffer, fields []Field, at, next uint32) {
	fields = slices.Clone(fields)
	slices.SortFunc(fields, func(x, y Field) int { return int(x.Tag) - int(y.Tag) })

	dataOff := at + uint32(2+12*len(fields)+4)
	var data bytes.Buffer

	buf.Write(b.u16(uint16(len(fields))))
	for _, f := range fields {
		enc := f.encode(b.order)
		buf.Write(b.u16(f.Tag))
		buf.Write(b.u16(f.Type))
		buf.Write(b.u32(f.count()))
		if len(enc) <= 4 {
			var inline [4]byte
			copy(inline[:], enc)
			buf.Write(inline[:])
			continue
		}
		buf.Write(b.u32(dataOff + uint32(data.Len())))
		data.Write(enc)
		if len(enc)%2 == 1 {
			data.WriteByte(0)
		}
	}
	buf.Write(b.u32(next))
	buf.Write(data.Bytes())
}

func (b *Builder) u16(v uint16) []byte {
	out := make([]byte, 2)
	b.order.PutUint16(out, v)
	return out
}

func (b *Builder) u32(v uint32) []byte {
	out := make([]byte, 4)
	b.order.PutUint32(out, v)
	return out
}

// JPEG wraps the TIFF stream in a minimal JPEG: SOI, an APP1 Exif
// segment and EOI.
func (b *Builder) JPEG() []byte {
	return WithExif([]byte{0xFF, 0xD8, 0xFF, 0xD9}, b.TIFF())
}

// WithExif inserts an APP1 Exif segment carrying tiff directly after the
// SOI marker of jpeg.
func WithExif(jpeg, tiff []byte) []byte {
	var buf bytes.Buffer
	buf.Write(jpeg[:2])
	buf.Write([]byte{0xFF, 0xE1})
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(2+6+len(tiff)))
	buf.Write(length[:])
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write(jpeg[2:])
	return buf.Bytes()
}
