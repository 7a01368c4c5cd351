// Package goexif implements the high-level tag source on top of
// github.com/rwcarlsen/goexif.
//
// goexif resolves the IFD chain itself and exposes every field by name.
// This source regroups those fields into the general group, keyed by tag
// id, and the GPS group, keyed by symbolic name.
package goexif

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/registry"
	"github.com/simonhull/photometa/internal/types"
)

// Source is the goexif-backed primary tag source.
type Source struct{}

func init() {
	exif.RegisterParsers(mknote.All...)

	src := &Source{}
	registry.RegisterPrimary(types.FormatJPEG, src)
	registry.RegisterPrimary(types.FormatTIFF, src)
}

// LoadPrimary decodes the EXIF block of a JPEG or TIFF image.
//
// Non-critical decode errors (an unreadable sub-IFD, a broken maker note)
// are tolerated; whatever goexif recovered is returned.
func (s *Source) LoadPrimary(r io.ReaderAt, size int64, path string) (*types.PrimaryTags, error) {
	x, err := exif.Decode(io.NewSectionReader(r, 0, size))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("%s: decode exif: %w", path, err)
	}

	w := &walker{tags: &types.PrimaryTags{
		General: make(types.TagDictionary),
		GPS:     make(types.TagDictionary),
	}}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("%s: walk exif: %w", path, err)
	}

	_, hasPointer := w.tags.General[types.ID(catalog.TagGPSIFD)]
	w.tags.HasGPS = hasPointer || w.tags.GPS.Len() > 0
	return w.tags, nil
}

// walker sorts goexif fields into the general and GPS groups.
type walker struct {
	tags *types.PrimaryTags
}

func (w *walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	field := string(name)

	// Maker-note fields ("Canon.ContrastMode") use their own id space.
	if strings.Contains(field, ".") {
		return nil
	}

	if strings.HasPrefix(field, "GPS") && field != string(exif.GPSInfoIFDPointer) {
		key := field
		if known, ok := catalog.GPSName(tag.Id); ok {
			key = known
		}
		w.tags.GPS[types.Name(key)] = Convert(tag)
		return nil
	}

	w.tags.General[types.ID(tag.Id)] = Convert(tag)
	return nil
}

// Convert maps a goexif tag to a RawValue. Single-element values are
// returned bare; longer ones as a Tuple.
func Convert(tag *tiff.Tag) types.RawValue {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil || !utf8.ValidString(s) {
			return types.Bytes(slices.Clone(tag.Val))
		}
		return types.Text(strings.TrimRight(s, "\x00"))
	case tiff.UndefVal:
		return types.Bytes(slices.Clone(tag.Val))
	}

	n := int(tag.Count)
	items := make([]types.RawValue, 0, n)
	for i := range n {
		v, ok := element(tag, i)
		if !ok {
			return types.Bytes(slices.Clone(tag.Val))
		}
		items = append(items, v)
	}
	if len(items) == 1 {
		return items[0]
	}
	return types.Tuple(items...)
}

func element(tag *tiff.Tag, i int) (types.RawValue, bool) {
	switch tag.Format() {
	case tiff.IntVal:
		v, err := tag.Int64(i)
		return types.Int(v), err == nil
	case tiff.RatVal:
		num, den, err := tag.Rat2(i)
		return types.Rat(num, den), err == nil
	case tiff.FloatVal:
		v, err := tag.Float(i)
		return types.Float(v), err == nil
	default:
		return types.RawValue{}, false
	}
}
