package photometa

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/simonhull/photometa/internal/diagnostics"
	"github.com/simonhull/photometa/internal/fileinfo"
	"github.com/simonhull/photometa/internal/geo"
	"github.com/simonhull/photometa/internal/reconcile"
	"github.com/simonhull/photometa/internal/registry"
	"github.com/simonhull/photometa/internal/textdec"
	"github.com/simonhull/photometa/internal/types"
	"github.com/simonhull/photometa/internal/valuefmt"

	// Register the built-in tag sources.
	_ "github.com/simonhull/photometa/internal/goexif"
	_ "github.com/simonhull/photometa/internal/ifd"
)

// Extract runs the decoding engine on tag dictionaries that were already
// read by the caller.
//
// Either input may be nil. Extract never fails: values that cannot be
// decoded are omitted or rendered as null, and the diagnostics section
// records what was missing. The basic section is left empty.
//
// Example:
//
//	rec := photometa.Extract(&photometa.PrimaryTags{
//	    General: photometa.TagDictionary{
//	        photometa.ID(271): photometa.Text("Canon"),
//	        photometa.ID(37396): photometa.Rat(50, 1),
//	    },
//	}, nil)
//	fmt.Println(rec.EXIF.Get("焦距")) // 50mm
func Extract(primary *PrimaryTags, secondary SectionedDictionary, opts ...Option) *MetadataRecord {
	options := newOptions(opts)
	rec := types.NewRecord("")

	e, err := options.engine()
	if err != nil {
		rec.Warnings = append(rec.Warnings, Warning{Stage: "config", Message: err.Error()})
		options.encodings = nil
		e, _ = options.engine()
	}

	in := diagnostics.Input{
		GeneralSupport:     primary != nil,
		PrimaryAttempted:   primary != nil,
		SecondaryAttempted: secondary != nil,
		SecondarySections:  secondary.Names(),
	}
	e.reconcile(rec, primary, secondary, &in)
	rec.Diagnostics = diagnostics.Record(in)

	if options.ignoreWarnings {
		rec.Warnings = nil
	}
	return rec
}

// engine is one configured extraction pipeline. It is immutable and
// shared by the workers of OpenMany.
type engine struct {
	reconciler *reconcile.Reconciler
	log        *zap.Logger
	options    *openOptions
}

func (o *openOptions) engine() (*engine, error) {
	dec := textdec.Default()
	if len(o.encodings) > 0 {
		var err error
		if dec, err = textdec.New(o.encodings...); err != nil {
			return nil, fmt.Errorf("configure encodings: %w", err)
		}
	}

	return &engine{
		reconciler: &reconcile.Reconciler{
			Formatter:   valuefmt.New(dec),
			Converter:   geo.New(dec),
			Logger:      o.logger,
			MapsBaseURL: o.mapsBaseURL,
			Precision:   o.precision,
		},
		log:     o.logger,
		options: o,
	}, nil
}

// extract fills rec from the image readable through r.
func (e *engine) extract(rec *MetadataRecord, r io.ReaderAt, size int64) {
	path := rec.Path
	var in diagnostics.Input

	if err := fileinfo.Image(&rec.Basic, io.NewSectionReader(r, 0, size)); err != nil {
		e.warn(rec, "basic", err)
	}

	format, err := types.DetectFormat(r, size, path)
	rec.Format = format
	if err != nil {
		e.warn(rec, "format", err)
	}

	var primary *types.PrimaryTags
	if src := registry.Primary(format); src != nil {
		in.GeneralSupport = true
		in.PrimaryAttempted = true
		if primary, err = src.LoadPrimary(r, size, path); err != nil {
			e.warn(rec, "primary", err)
			primary = nil
		}
	}

	var secondary types.SectionedDictionary
	in.SecondaryAttempted = true
	if src := registry.Secondary(format); src != nil {
		secondary, in.SecondaryErr = src.LoadSecondary(r, size, path)
	} else {
		in.SecondaryErr = &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no tag source for format %s", format),
		}
	}
	if in.SecondaryErr != nil {
		e.warn(rec, "secondary", in.SecondaryErr)
		secondary = nil
	} else {
		in.SecondarySections = secondary.Names()
	}

	in.HeaderAttempted = true
	in.Header, in.HeaderErr = fileinfo.Header(r, size, diagnostics.HeaderLength)
	if in.HeaderErr != nil {
		e.warn(rec, "header", in.HeaderErr)
	}

	e.reconcile(rec, primary, secondary, &in)
	rec.Diagnostics = diagnostics.Record(in)
}

// reconcile merges the tag sources into rec and records provenance in in.
func (e *engine) reconcile(rec *MetadataRecord, primary *types.PrimaryTags, secondary types.SectionedDictionary, in *diagnostics.Input) {
	res := e.reconciler.Reconcile(primary, secondary)

	rec.EXIF = res.EXIF
	rec.GPS = res.GPS
	rec.Raw = res.Raw
	rec.Location = res.Location

	in.ExifFound = res.ExifFound
	in.ExifTagCount = res.ExifTagCount
	in.GPSFound = res.GPSFound
	in.GPSSource = res.GPSSource

	e.log.Debug("extracted",
		zap.String("path", rec.Path),
		zap.Int("exif_tags", res.ExifTagCount),
		zap.String("gps_source", res.GPSSource),
	)
}

func (e *engine) warn(rec *MetadataRecord, stage string, err error) {
	e.log.Debug("extraction warning",
		zap.String("path", rec.Path),
		zap.String("stage", stage),
		zap.Error(err),
	)
	rec.Warnings = append(rec.Warnings, Warning{Stage: stage, Message: err.Error()})
}
