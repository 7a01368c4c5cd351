// Package geojson exports geotagged metadata records as a GeoJSON
// FeatureCollection of points.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/geo"
	"github.com/simonhull/photometa/internal/types"
)

// Tags copied into feature properties, by property name. The first
// available tag wins.
var properties = []struct {
	name string
	tags []uint16
}{
	{"make", []uint16{271}},
	{"model", []uint16{272}},
	{"taken", []uint16{36867, 306}},
}

// Feature returns a point feature for rec, or false when rec has no
// complete coordinate.
func Feature(rec *types.MetadataRecord) (*geojson.Feature, bool) {
	pt, ok := geo.Point(rec.Location)
	if !ok {
		return nil, false
	}

	f := geojson.NewFeature(pt)
	f.Properties["name"] = filepath.Base(rec.Path)
	f.Properties["path"] = rec.Path
	for _, p := range properties {
		for _, id := range p.tags {
			label, _ := catalog.Important(id)
			if v, ok := rec.EXIF.Get(label); ok && v.IsAvailable() {
				f.Properties[p.name] = v.String()
				break
			}
		}
	}
	if src := rec.Diagnostics.GPSSource; src != nil {
		f.Properties["gps_source"] = *src
	}
	return f, true
}

// FeatureCollection builds a collection from every geotagged record.
// Records without a complete coordinate are skipped.
func FeatureCollection(records []*types.MetadataRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if f, ok := Feature(rec); ok {
			fc.Append(f)
		}
	}
	return fc
}

// Write encodes the collection of records to w.
func Write(w io.Writer, records []*types.MetadataRecord) error {
	data, err := json.MarshalIndent(FeatureCollection(records), "", "  ")
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Save writes the collection to path.
func Save(path string, records []*types.MetadataRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create geojson file: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
