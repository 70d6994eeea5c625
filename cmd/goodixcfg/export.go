package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cupid-development/goodix-cfg-bin/internal/database"
	"github.com/cupid-development/goodix-cfg-bin/internal/gtx8"
	"github.com/cupid-development/goodix-cfg-bin/internal/utils"
	"github.com/spf13/cobra"
)

type ExportStats struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	ExportedFiles   int
	PackagesWritten int64
	DecodeErrors    int
	DatabaseErrors  int
}

var exportCmd = &cobra.Command{
	Use:   "export <cfg-bin-file>...",
	Short: "Decode cfg group files into a SQLite database",
	Long: `Export decodes one or more cfg group files and writes their headers,
package metadata and raw IC config payloads into a SQLite database, so
configurations can be compared across firmware revisions with plain SQL.

Files that fail to decode are reported and skipped; the remaining files are
still exported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := &ExportStats{
			StartTime:  time.Now(),
			TotalFiles: len(args),
		}

		ctx := context.Background()

		db, err := database.New(database.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		exporter := database.NewExporter(db)
		if err := exporter.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("preparing database: %w", err)
		}

		slog.Info("Exporting cfg bins", "files", len(args), "database", cfg.Database)

		progress := utils.NewProgress(len(args), !(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))

		for i, path := range args {
			progress.Update(i+1, path)

			data, err := os.ReadFile(path)
			if err != nil {
				slog.Error("Failed to read cfg bin", "path", path, "error", err)
				stats.DecodeErrors++
				continue
			}

			cfgBin, err := gtx8.Parse(data)
			if err != nil {
				slog.Error("Failed to decode cfg bin", "path", path, "size_bytes", len(data), "error", err)
				stats.DecodeErrors++
				continue
			}

			written, err := exporter.ExportFile(ctx, path, cfgBin)
			if err != nil {
				slog.Error("Database insert failed", "path", path, "error", err)
				stats.DatabaseErrors++
				continue
			}

			stats.PackagesWritten += int64(written)
			stats.ExportedFiles++
		}

		progress.Finish()
		stats.EndTime = time.Now()

		duration := stats.EndTime.Sub(stats.StartTime)

		fmt.Printf("Files exported: %d/%d\n", stats.ExportedFiles, stats.TotalFiles)
		fmt.Printf("Packages written: %s\n", utils.Number(stats.PackagesWritten))
		fmt.Printf("Decode errors: %d\n", stats.DecodeErrors)
		fmt.Printf("Database errors: %d\n", stats.DatabaseErrors)
		fmt.Printf("Duration: %.1fms\n", float64(duration.Nanoseconds())/1000000.0)
		fmt.Println("Try running: goodixcfg query --tables")

		if stats.ExportedFiles == 0 {
			return fmt.Errorf("no files exported")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
