// Package registry manages the tag sources available for each image format.
package registry

import (
	"io"

	"github.com/simonhull/photometa/internal/types"
)

// PrimarySource is the high-level tag source: it resolves IFD structure
// itself and returns the general tag group plus the GPS group keyed by
// symbolic name.
type PrimarySource interface {
	// LoadPrimary decodes the tags of an image. It returns an error when
	// the image carries no decodable EXIF data.
	LoadPrimary(r io.ReaderAt, size int64, path string) (*types.PrimaryTags, error)
}

// SecondarySource is the low-level tag source: it returns every IFD it
// walks as a section keyed by numeric tag id.
type SecondarySource interface {
	// LoadSecondary decodes the tag sections of an image.
	LoadSecondary(r io.ReaderAt, size int64, path string) (types.SectionedDictionary, error)
}

// primaries maps formats to their high-level sources.
var primaries = make(map[types.Format]PrimarySource)

// secondaries maps formats to their low-level sources.
var secondaries = make(map[types.Format]SecondarySource)

// RegisterPrimary registers a high-level source for a format.
// This is called by source packages during initialization (init functions).
func RegisterPrimary(format types.Format, src PrimarySource) {
	primaries[format] = src
}

// Primary returns the high-level source for a given format.
// Returns nil if no source is registered for the format.
func Primary(format types.Format) PrimarySource {
	return primaries[format]
}

// RegisterSecondary registers a low-level source for a format.
// This is called by source packages during initialization (init functions).
func RegisterSecondary(format types.Format, src SecondarySource) {
	secondaries[format] = src
}

// Secondary returns the low-level source for a given format.
// Returns nil if no source is registered for the format.
func Secondary(format types.Format) SecondarySource {
	return secondaries[format]
}
