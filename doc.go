// Package photometa extracts hidden metadata from photos: camera facts,
// exposure settings, timestamps and the GPS position where the photo was
// taken.
//
// # Quick Start
//
// Reading metadata from a photo:
//
//	rec, err := photometa.Open("IMG_0001.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	model, _ := rec.EXIF.Get("相機型號")
//	fmt.Println(model)
//	if link, ok := rec.GPS.Get(photometa.FieldMapLink); ok {
//		fmt.Println(link)
//	}
//
// # Records
//
// Every extraction produces a MetadataRecord with five sections:
//
//	basic_info       - file system facts and image dimensions
//	exif_data        - curated EXIF tags under display labels
//	gps_data         - GPS tags plus decimal coordinates and a map link
//	raw_data         - every decoded tag, grouped by directory
//	diagnostic_info  - what was found and suggestions when it wasn't
//
// Section order and key order are stable, so the JSON form of a record
// can be diffed between runs.
//
// # Tag Sources
//
// Tags are read by two independent sources. The primary source decodes
// the EXIF segment with a full EXIF library; the secondary source walks
// the TIFF directories itself and keeps numeric tag ids. The reconciler
// prefers primary GPS data and falls back to the secondary source when
// the primary one has no usable GPS group. Diagnostics record which
// source supplied the position.
//
// # Text
//
// Byte-valued tags are decoded by trying an ordered list of encodings
// (utf-8, latin-1, cp1252 and gbk by default, see WithEncodings). Values
// that no encoding decodes cleanly are shown as hex with a "[HEX] " prefix
// in the raw section and omitted from the curated ones.
//
// # Error Handling
//
// photometa distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent extraction entirely (file not found, unreadable file)
//   - Warnings indicate non-fatal issues (no EXIF segment, damaged directories)
//
// A fatal error still returns a record with Error set. Warnings are
// collected in MetadataRecord.Warnings:
//
//	for _, w := range rec.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// # Batches
//
// Extraction is stateless, so batches parallelize freely:
//
//	recs, err := photometa.OpenMany(ctx, paths, photometa.WithWorkers(8))
//
// Already decoded tag dictionaries can be run through the engine without
// touching the file system using Extract.
package photometa
