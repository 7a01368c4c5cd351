package photometa

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/simonhull/photometa/internal/geo"
	"github.com/simonhull/photometa/internal/types"
)

// Option configures behavior when extracting metadata.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	rec, err := photometa.Open("photo.jpg",
//	    photometa.WithPrecision(8),
//	    photometa.WithEncodings("utf-8", "big5"),
//	)
type Option func(*openOptions)

// openOptions holds configuration for an extraction.
type openOptions struct {
	logger         *zap.Logger
	mapsBaseURL    string
	encodings      []string // nil = textdec.DefaultEncodings
	precision      int      // Decimal places of derived coordinates
	workers        int      // OpenMany concurrency limit
	strictParsing  bool     // Fail on any warning
	ignoreWarnings bool     // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:      zap.NewNop(),
		mapsBaseURL: types.DefaultMapsBaseURL,
		precision:   geo.PrecisionDisplay,
		workers:     runtime.NumCPU(),
	}
}

func newOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithLogger sets the logger used for debug output about tag sources and
// GPS provenance. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *openOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithEncodings sets the ordered list of text encodings tried when a tag
// holds raw bytes.
//
// Names are resolved when extraction starts; an unknown name makes Open
// fail. The default is utf-8, latin-1, cp1252, gbk.
//
// Example:
//
//	// Photos from Taiwanese phones often carry Big5 descriptions
//	rec, err := photometa.Open("photo.jpg",
//	    photometa.WithEncodings("utf-8", "big5", "latin-1"),
//	)
func WithEncodings(names ...string) Option {
	return func(o *openOptions) {
		o.encodings = append([]string(nil), names...)
	}
}

// WithMapsBaseURL sets the base of the generated map link.
//
// Default is https://www.google.com/maps.
func WithMapsBaseURL(base string) Option {
	return func(o *openOptions) {
		o.mapsBaseURL = base
	}
}

// WithPrecision sets the number of decimal places of the derived latitude
// and longitude fields. Default is 6. Zero rounds to whole degrees;
// negative values are ignored.
func WithPrecision(digits int) Option {
	return func(o *openOptions) {
		if digits >= 0 {
			o.precision = digits
		}
	}
}

// WithWorkers bounds how many files OpenMany extracts in parallel.
//
// Default is runtime.NumCPU(). Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, photometa keeps going when a tag source cannot read a file
// or the image header cannot be decoded, recording the problem in
// MetadataRecord.Warnings and the diagnostics section.
//
// With strict parsing enabled, Open returns an error alongside the record
// when any warning was recorded.
//
// Example:
//
//	rec, err := photometa.Open("photo.jpg", photometa.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues are collected in
// MetadataRecord.Warnings. This option discards them. The diagnostics
// section is unaffected.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}
