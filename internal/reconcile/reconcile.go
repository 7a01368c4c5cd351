// Package reconcile merges the output of the two tag sources into the
// sections of a metadata record.
//
// The primary source supplies the curated camera section and, when it
// found one, the GPS group. The secondary source fills in GPS when the
// primary has none and is the only input to the raw audit section.
package reconcile

import (
	"go.uber.org/zap"

	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/geo"
	"github.com/simonhull/photometa/internal/types"
	"github.com/simonhull/photometa/internal/valuefmt"
)

// GPS provenance values.
const (
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
)

// RawSuffix marks the verbatim echo of a coordinate field.
const RawSuffix = " (原始)"

// echoed lists the GPS fields whose raw values are echoed next to the
// decoded group.
var echoed = []string{geo.Latitude, geo.Longitude, geo.DestLatitude, geo.DestLongitude}

// Result holds the reconciled sections and the provenance the
// diagnostics recorder needs.
type Result struct {
	Raw          map[string]map[string]types.DecodedValue
	GPSSource    string
	Location     types.GPSCoordinate
	EXIF         types.OrderedMap
	GPS          types.OrderedMap
	ExifTagCount int
	ExifFound    bool
	GPSFound     bool
}

// Reconciler merges primary and secondary tag dictionaries.
type Reconciler struct {
	Formatter   *valuefmt.Formatter
	Converter   *geo.Converter
	Logger      *zap.Logger
	MapsBaseURL string
	// Precision is the number of fraction digits of the derived
	// coordinate fields. Zero rounds to whole degrees; negative selects
	// geo.PrecisionDisplay.
	Precision int
}

// New returns a Reconciler with default formatting, display precision and
// map link base.
func New() *Reconciler {
	return &Reconciler{
		Formatter:   valuefmt.New(nil),
		Converter:   geo.New(nil),
		Logger:      zap.NewNop(),
		MapsBaseURL: types.DefaultMapsBaseURL,
		Precision:   geo.PrecisionDisplay,
	}
}

// Reconcile builds the exif, gps and raw sections. Either input may be
// nil. Reconcile never fails; malformed values degrade to omitted or null
// fields.
func (r *Reconciler) Reconcile(primary *types.PrimaryTags, secondary types.SectionedDictionary) Result {
	res := Result{Raw: make(map[string]map[string]types.DecodedValue)}
	log := r.logger()

	if primary != nil {
		res.ExifTagCount = primary.General.Len()
		res.ExifFound = res.ExifTagCount > 0
		r.curate(primary.General, &res.EXIF)
	}

	switch {
	case primary != nil && primary.HasGPS:
		res.GPSSource = SourcePrimary
		res.Location = r.decodeGPS(primary.GPS, &res.GPS)
	case secondary.Section(types.SectionGPS).Len() > 0:
		res.GPSSource = SourceSecondary
		res.Location = r.decodeGPS(secondary.Section(types.SectionGPS), &res.GPS)
	}
	res.GPSFound = res.GPSSource != ""
	if res.GPSFound {
		log.Debug("gps group decoded",
			zap.String("source", res.GPSSource),
			zap.Int("fields", res.GPS.Len()),
			zap.Bool("coordinate", res.Location.Complete()))
	}

	for _, name := range secondary.Names() {
		section := secondary[name]
		if section.Len() == 0 {
			continue
		}
		out := make(map[string]types.DecodedValue, section.Len())
		for k, v := range section {
			out[k.String()] = r.formatter().FormatRaw(v)
		}
		res.Raw[name] = out
	}

	return res
}

// curate fills exif with the important general tags in ascending id
// order. When two tags share a label the first one wins.
func (r *Reconciler) curate(general types.TagDictionary, exif *types.OrderedMap) {
	for _, k := range general.Keys() {
		id, ok := k.Numeric()
		if !ok {
			continue
		}
		label, ok := catalog.Important(id)
		if !ok {
			continue
		}
		if _, taken := exif.Get(label); taken {
			continue
		}
		value, ok := r.formatter().Format(id, general[k])
		if !ok {
			r.logger().Debug("tag omitted: undecodable text", zap.Uint16("tag", id))
			continue
		}
		exif.Set(label, value)
	}
}

// decodeGPS renders a GPS group in either key convention and appends the
// derived coordinate fields. It returns the coordinate at internal
// precision.
func (r *Reconciler) decodeGPS(group types.TagDictionary, gps *types.OrderedMap) types.GPSCoordinate {
	for _, k := range group.Keys() {
		name, ok := k.Symbol()
		if !ok {
			id, _ := k.Numeric()
			name = catalog.GPS.Name(id)
		}
		gps.Set(name, r.formatter().FormatGPS(group[k]))
	}

	display := r.converter().Coordinate(group, r.precision())
	gps.Set(types.FieldLatitude, number(display.Latitude))
	gps.Set(types.FieldLongitude, number(display.Longitude))
	if link, ok := display.MapLink(r.mapsBaseURL()); ok {
		gps.Set(types.FieldMapLink, types.Str(link))
	}

	for _, name := range echoed {
		idx, _ := catalog.GPSIndex(name)
		v, ok := group.Get(types.Name(name))
		if !ok {
			v, ok = group.Get(types.ID(idx))
		}
		if ok {
			gps.Set(name+RawSuffix, r.formatter().FormatRaw(v))
		}
	}

	return r.converter().Coordinate(group, geo.PrecisionInternal)
}

func number(f *float64) types.DecodedValue {
	if f == nil {
		return types.Unavailable()
	}
	return types.Num(*f)
}

// formatter and converter may return nil; both types fall back to the
// default decoder on a nil receiver.
func (r *Reconciler) formatter() *valuefmt.Formatter {
	return r.Formatter
}

func (r *Reconciler) converter() *geo.Converter {
	return r.Converter
}

func (r *Reconciler) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Reconciler) mapsBaseURL() string {
	if r.MapsBaseURL == "" {
		return types.DefaultMapsBaseURL
	}
	return r.MapsBaseURL
}

func (r *Reconciler) precision() int {
	if r.Precision < 0 {
		return geo.PrecisionDisplay
	}
	return r.Precision
}
