package photometa

import (
	"github.com/simonhull/photometa/internal/types"
)

// Result types, re-exported from internal/types.
type (
	MetadataRecord = types.MetadataRecord
	Diagnostics    = types.Diagnostics
	DecodedValue   = types.DecodedValue
	OrderedMap     = types.OrderedMap
	GPSCoordinate  = types.GPSCoordinate
)

// Input types for Extract, re-exported from internal/types.
type (
	RawValue            = types.RawValue
	Key                 = types.Key
	TagDictionary       = types.TagDictionary
	SectionedDictionary = types.SectionedDictionary
	PrimaryTags         = types.PrimaryTags
)

// Names of the derived GPS fields.
const (
	FieldLatitude  = types.FieldLatitude
	FieldLongitude = types.FieldLongitude
	FieldMapLink   = types.FieldMapLink
)

// Section names of a SectionedDictionary.
const (
	Section0th     = types.Section0th
	SectionExif    = types.SectionExif
	SectionGPS     = types.SectionGPS
	SectionInterop = types.SectionInterop
	Section1st     = types.Section1st
)

// ID returns the key of a numeric tag id.
func ID(id uint16) Key { return types.ID(id) }

// Name returns the key of a symbolic GPS field name such as "GPSLatitude".
func Name(name string) Key { return types.Name(name) }

// Raw value constructors.
func Bytes(b []byte) RawValue          { return types.Bytes(b) }
func Rat(num, den int64) RawValue      { return types.Rat(num, den) }
func Int(i int64) RawValue             { return types.Int(i) }
func Float(f float64) RawValue         { return types.Float(f) }
func Text(s string) RawValue           { return types.Text(s) }
func Tuple(items ...RawValue) RawValue { return types.Tuple(items...) }
