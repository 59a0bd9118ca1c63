package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "adt-press",
	Short: "adt-press - structured page data extraction for document assembly",
	Long: `adt-press extracts structured page data from PDF documents: rendered page
and spread images, native text, embedded raster images and vectorized drawing
regions. The result is a pdf_extract.json record plus PNG files, consumed by
the downstream translation and packaging stages.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
