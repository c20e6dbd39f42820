package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chrisdamba/heatwavesim/internal/models"
	"github.com/chrisdamba/heatwavesim/internal/output"
	"github.com/chrisdamba/heatwavesim/internal/simulator"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report <archive>",
	Short: "Print the final report stored in a run archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()

		a, err := output.DecodeArchive(f, strings.HasSuffix(name, ".zst"))
		if err != nil {
			return fmt.Errorf("error reading archive %s: %w", name, err)
		}
		if a.Report == nil {
			return fmt.Errorf("archive %s has no report", name)
		}
		return writeReport(cmd.OutOrStdout(), a, reportFormat)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, json or yaml")
}

func writeReport(w io.Writer, a *output.Archive, format string) error {
	switch format {
	case "text":
		fmt.Fprintf(w, "Run %s: %s agent decisions over %d days\n",
			a.RunID, humanize.Comma(int64(len(a.Logs))), len(a.DailyStats))
		return simulator.FormatReport(w, a.Report)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a.Report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a.Report); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unsupported report format %q", models.ErrInvalidConfig, format)
}
