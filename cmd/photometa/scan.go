package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/photometa"
	"github.com/simonhull/photometa/internal/geojson"
	"github.com/simonhull/photometa/internal/logger"
	"github.com/simonhull/photometa/internal/store"
)

var geojsonPath string

var scanCmd = &cobra.Command{
	Use:   "scan <photo>...",
	Short: "Extract metadata from many photos in parallel",
	Long: `Extract the metadata of every photo given and print one line per photo.

Results can be stored in a SQLite database (--db) and photos with GPS
coordinates can be exported as a GeoJSON FeatureCollection (--geojson).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&cfg.Database, "db", cfg.Database, "SQLite database for scan results")
	scanCmd.Flags().StringVar(&geojsonPath, "geojson", "", "Write located photos as GeoJSON to this path")
	scanCmd.Flags().IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Number of parallel workers")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.Get()
	out := cmd.OutOrStdout()

	// Flags were bound before the config file was loaded.
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database, _ = flags.GetString("db")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info("Starting scan",
		zap.Int("files", len(args)),
		zap.Int("workers", cfg.Workers),
	)
	start := time.Now()

	recs, err := photometa.OpenMany(cmd.Context(), args, extractOptions()...)
	if err != nil {
		return err
	}

	var db *store.Store
	if cfg.Database != "" {
		if db, err = store.New(cfg.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	located := 0
	for _, rec := range recs {
		fmt.Fprintln(out, summary(rec))
		if rec.Location.Complete() {
			located++
		}
		if db == nil {
			continue
		}
		entry, err := db.Save(rec)
		if err != nil {
			return fmt.Errorf("save %s: %w", rec.Path, err)
		}
		log.Debug("stored", zap.String("path", rec.Path), zap.String("id", entry.ID))
	}

	if geojsonPath != "" {
		if err := geojson.Save(geojsonPath, recs); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nGeoJSON 已儲存至: %s\n", geojsonPath)
	}

	log.Info("Scan complete",
		zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
		zap.Int("files", len(recs)),
		zap.Int("located", located),
	)
	return nil
}

// summary is the one-line scan result of rec.
func summary(rec *photometa.MetadataRecord) string {
	if rec.Error != "" {
		return fmt.Sprintf("%s\t錯誤: %s", rec.Path, rec.Error)
	}

	camera := "-"
	if v, ok := rec.EXIF.Get("相機型號"); ok {
		camera = v.String()
	}
	position := "-"
	if lat, ok := rec.GPS.Get(photometa.FieldLatitude); ok {
		lon, _ := rec.GPS.Get(photometa.FieldLongitude)
		position = lat.String() + "," + lon.String()
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s", rec.Path, rec.Format, camera, position)
}
