package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashforge/gasplot-cli/internal/dataset"
	"github.com/hashforge/gasplot-cli/internal/regression"
	"github.com/hashforge/gasplot-cli/internal/report"
	"github.com/hashforge/gasplot-cli/internal/utils"
)

var (
	anaImagePath  string
	anaLengthCol  string
	anaGasCol     string
	anaThreshold  int
	anaMaxRows    int
	anaNoChart    bool
	anaSheetName  string
	anaSheetIndex int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Fit gas usage against message length and render the charts",
	Long: `Analyze loads the benchmark table (CSV or XLSX), splits byte-count rows
from named test cases, fits a least-squares line over all rows and over the
small-message subset, writes the chart image, and prints the cost summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			loadConfig()
		}
		path := cfg.InputPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no input file: pass one or set input_path in config")
		}

		opt := dataset.DefaultOptions()
		if cfg.LengthColumn != "" {
			opt.LengthColumn = cfg.LengthColumn
		}
		if cfg.GasColumn != "" {
			opt.GasColumn = cfg.GasColumn
		}
		if anaLengthCol != "" {
			opt.LengthColumn = anaLengthCol
		}
		if anaGasCol != "" {
			opt.GasColumn = anaGasCol
		}
		if cmd.Flags().Changed("max-rows") {
			opt.MaxRows = anaMaxRows
		} else if cfg.MaxRows > 0 {
			opt.MaxRows = cfg.MaxRows
		}
		opt.SheetName = anaSheetName
		opt.SheetIndex = anaSheetIndex

		threshold := cfg.SmallThreshold
		if cmd.Flags().Changed("small-threshold") {
			threshold = anaThreshold
		}
		if threshold <= 0 {
			threshold = 200
		}

		imagePath := cfg.ImagePath
		if anaImagePath != "" {
			imagePath = anaImagePath
		}
		if imagePath == "" {
			imagePath = "gas_analysis.png"
		}

		// choose loader by extension
		var (
			rows []dataset.Row
			err  error
		)
		if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			rows, err = dataset.LoadXLSX(path, opt)
		} else {
			rows, err = dataset.LoadCSV(path, opt)
		}
		if err != nil {
			return err
		}

		table, err := dataset.Partition(rows)
		if err != nil {
			return err
		}

		// Full fit over every numeric row. Too few points is not fatal:
		// the fit and its chart are skipped and the special-format dump
		// still prints.
		var full, small *regression.Result
		if fit, ferr := regression.Fit(table.Numeric); ferr == nil {
			full = &fit
		} else if !errors.Is(ferr, regression.ErrInsufficientData) {
			return ferr
		} else if debug {
			fmt.Fprintf(os.Stderr, "⚠ Skipping regression: %v\n", ferr)
		}

		smallRows := table.Small(threshold)
		if full != nil {
			if fit, ferr := regression.Fit(smallRows); ferr == nil {
				small = &fit
			} else if !errors.Is(ferr, regression.ErrInsufficientData) {
				return ferr
			} else if debug {
				fmt.Fprintf(os.Stderr, "⚠ Skipping small-message regression: %v\n", ferr)
			}
		}

		if full != nil && !anaNoChart {
			panels := []report.Panel{{
				Title: "Gas Usage vs Message Length",
				Rows:  table.Numeric,
				Fit:   *full,
				XMax:  1.1 * float64(table.MaxLength()),
			}}
			if small != nil {
				panels = append(panels, report.Panel{
					Title: "Gas Usage (Small Messages)",
					Rows:  smallRows,
					Fit:   *small,
					XMax:  float64(threshold),
				})
			}
			png, rerr := report.Render(panels)
			if rerr != nil {
				return rerr
			}
			if werr := utils.SafeWriteFile(imagePath, png); werr != nil {
				return fmt.Errorf("write chart: %w", werr)
			}
			fmt.Printf("✓ Wrote chart to %s\n", imagePath)
		}

		out := report.Console{
			Full:           full,
			Small:          small,
			SmallThreshold: threshold,
			Special:        table.Special,
		}
		fmt.Print(out.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaImagePath, "output", "o", "", "path for the chart image (default from config)")
	analyzeCmd.Flags().StringVar(&anaLengthCol, "length-column", "", "header name of the message length column")
	analyzeCmd.Flags().StringVar(&anaGasCol, "gas-column", "", "header name of the gas used column")
	analyzeCmd.Flags().IntVar(&anaThreshold, "small-threshold", 200, "byte cutoff for the small-message fit")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to load (0 = unlimited)")
	analyzeCmd.Flags().BoolVar(&anaNoChart, "no-chart", false, "skip rendering the chart image")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
