package photometa

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/photometa/internal/fileinfo"
	"github.com/simonhull/photometa/internal/types"
)

// Open extracts the metadata of the image at path.
//
// Supported tag sources: JPEG and TIFF. Other image formats still get the
// basic file section and the diagnostics section.
//
// Open reads only what it needs: the image header for dimensions and the
// EXIF segment. A file with missing or damaged EXIF data is not an error;
// the record explains what was missing in its diagnostics section and
// MetadataRecord.Warnings lists what went wrong along the way.
//
// An error is returned only when the file cannot be examined at all. The
// record is still returned in that case, with Error set, so callers can
// render it like any other result.
//
// Example:
//
//	rec, err := photometa.Open("IMG_0001.jpg")
//	if err != nil {
//		return err
//	}
//	if link, ok := rec.GPS.Get(photometa.FieldMapLink); ok {
//		fmt.Println(link)
//	}
func Open(path string, opts ...Option) (*MetadataRecord, error) {
	e, err := newOptions(opts).engine()
	if err != nil {
		return nil, err
	}
	return e.open(path)
}

// OpenContext extracts metadata with context support for cancellation.
//
// A single extraction runs in bounded time, so the context is checked
// before starting only.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	rec, err := photometa.OpenContext(ctx, "IMG_0001.jpg")
func OpenContext(ctx context.Context, path string, opts ...Option) (*MetadataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany extracts metadata from multiple files concurrently.
//
// Files are processed by up to runtime.NumCPU() goroutines (see
// WithWorkers). Results are returned in the same order as paths.
//
// A file that cannot be read does not abort the batch: its record carries
// Error instead. OpenMany fails only when the options are invalid or ctx
// is cancelled.
//
// Example:
//
//	recs, err := photometa.OpenMany(ctx, paths, photometa.WithWorkers(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rec := range recs {
//		fmt.Printf("%s: %s\n", rec.Path, rec.Format)
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*MetadataRecord, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	options := newOptions(opts)
	e, err := options.engine()
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.workers)

	results := make([]*MetadataRecord, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Per-file failures are recorded in rec.Error.
			rec, _ := e.open(path)
			results[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// open runs one extraction from the file system.
func (e *engine) open(path string) (*MetadataRecord, error) {
	rec := types.NewRecord(path)

	basic, err := fileinfo.Stat(path)
	if err != nil {
		return e.fail(rec, err)
	}
	rec.Basic = basic

	f, err := os.Open(path)
	if err != nil {
		return e.fail(rec, fmt.Errorf("open file: %w", err))
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return e.fail(rec, fmt.Errorf("stat file: %w", err))
	}

	e.extract(rec, f, stat.Size())

	if e.options.strictParsing && len(rec.Warnings) > 0 {
		err := fmt.Errorf("strict parsing failed: %s", rec.Warnings[0])
		rec.Error = err.Error()
		return rec, err
	}
	if e.options.ignoreWarnings {
		rec.Warnings = nil
	}
	return rec, nil
}

// fail records err on rec. A missing file gets the short user-facing
// message.
func (e *engine) fail(rec *MetadataRecord, err error) (*MetadataRecord, error) {
	if errors.Is(err, fs.ErrNotExist) {
		rec.Error = "檔案不存在: " + rec.Path
	} else {
		rec.Error = err.Error()
	}
	e.log.Debug("extraction failed", zap.String("path", rec.Path), zap.Error(err))
	return rec, err
}
