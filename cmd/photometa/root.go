package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/photometa"
	"github.com/simonhull/photometa/internal/config"
	"github.com/simonhull/photometa/internal/logger"
	"github.com/simonhull/photometa/internal/render"
)

var (
	cfg        = config.Default()
	configPath string
	verbose    bool
	logFile    string

	outputPath string
	gpsOnly    bool
	exifOnly   bool
	basicOnly  bool
	rawOnly    bool
	diagOnly   bool
	noPretty   bool
	mapLink    bool
)

var rootCmd = &cobra.Command{
	Use:   "photometa <photo>",
	Short: "相片隱藏資訊提取器 - Photo Metadata Extractor",
	Long: `photometa extracts the metadata hidden in a photo.

Sections:
  - basic_info       file name, size, timestamps, image format and size
  - exif_data        camera, lens, exposure settings, capture time
  - gps_data         GPS tags, decimal coordinates and a map link
  - raw_data         every decoded tag, grouped by directory
  - diagnostic_info  what was found and hints when it wasn't`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		flags := cmd.Flags()
		if flags.Changed("verbose") {
			cfg.Verbose = verbose
		}
		if flags.Changed("log-file") {
			cfg.LogFile = logFile
		}

		// Initialize logger with optional file output
		if cfg.LogFile != "" {
			logger.InitWithFile(cfg.Verbose, cfg.LogFile)
		} else {
			logger.Init(cfg.Verbose)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runShow,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "錯誤: %v\n", err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file for persistent logging (JSON format)")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "輸出 JSON 檔案路徑")
	rootCmd.Flags().BoolVar(&gpsOnly, "gps-only", false, "只顯示 GPS 資訊")
	rootCmd.Flags().BoolVar(&exifOnly, "exif-only", false, "只顯示 EXIF 資訊")
	rootCmd.Flags().BoolVar(&basicOnly, "basic-only", false, "只顯示基本資訊")
	rootCmd.Flags().BoolVar(&rawOnly, "raw-only", false, "只顯示原始資料")
	rootCmd.Flags().BoolVar(&diagOnly, "diagnostics-only", false, "只顯示診斷資訊與建議")
	rootCmd.Flags().BoolVar(&noPretty, "no-pretty", false, "不使用美化格式輸出")
	rootCmd.Flags().BoolVar(&mapLink, "map-link", false, "顯示 Google Maps 連結")
	rootCmd.MarkFlagsMutuallyExclusive("gps-only", "exif-only", "basic-only", "raw-only", "diagnostics-only")
}

// extractOptions maps the configuration onto library options.
func extractOptions() []photometa.Option {
	return []photometa.Option{
		photometa.WithLogger(logger.Get()),
		photometa.WithEncodings(cfg.Encodings...),
		photometa.WithMapsBaseURL(cfg.MapsBaseURL),
		photometa.WithPrecision(cfg.Precision),
		photometa.WithWorkers(cfg.Workers),
	}
}

func selectedView() render.View {
	switch {
	case gpsOnly:
		return render.ViewGPS
	case exifOnly:
		return render.ViewEXIF
	case basicOnly:
		return render.ViewBasic
	case rawOnly:
		return render.ViewRaw
	case diagOnly:
		return render.ViewDiagnostics
	default:
		return render.ViewAll
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logger.Get()
	out := cmd.OutOrStdout()

	rec, err := photometa.Open(args[0], extractOptions()...)
	if rec == nil {
		return err
	}
	if err != nil {
		log.Debug("extraction failed", zap.String("path", args[0]), zap.Error(err))
	}
	for _, w := range rec.Warnings {
		log.Info("warning", zap.String("path", rec.Path), zap.Stringer("warning", w))
	}

	if err := render.Text(out, rec, selectedView()); err != nil {
		return err
	}

	if mapLink {
		if link, ok := rec.GPS.Get(photometa.FieldMapLink); ok {
			fmt.Fprintf(out, "\nGoogle Maps: %s\n", link)
		} else {
			fmt.Fprintln(out, "\n沒有 GPS 座標，無法產生地圖連結")
		}
	}

	if outputPath != "" {
		if err := render.SaveJSON(outputPath, rec, !noPretty); err != nil {
			return fmt.Errorf("儲存檔案時發生錯誤: %w", err)
		}
		fmt.Fprintf(out, "\n資料已儲存至: %s\n", outputPath)
	}
	return nil
}
