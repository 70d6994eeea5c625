package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/cupid-development/goodix-cfg-bin/internal/gtx8"
	"github.com/spf13/cobra"
)

var compact bool

var decodeCmd = &cobra.Command{
	Use:   "decode <cfg-bin-file>",
	Short: "Decode a cfg group file and print it as JSON",
	Long: `Decode reads a GTX8 cfg group file, decodes it against the driver's field
catalog and writes the resulting JSON document to standard output. Field
order in the output matches the order the fields occupy in the file.

On any decoding failure nothing is written to standard output; the error is
reported on standard error and the process exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading cfg bin file: %w", err)
		}

		slog.Debug("Decoding cfg bin", "path", path, "size_bytes", len(data))

		cfgBin, err := gtx8.Parse(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		doc := cfgBin.Document()

		var out []byte
		if compact {
			out, err = json.Marshal(doc)
		} else {
			out, err = json.MarshalIndent(doc, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON instead of indented")
}
