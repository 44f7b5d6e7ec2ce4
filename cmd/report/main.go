// Command report exports table and weekplan grids from the terminal.
package main

import (
	"os"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Render grids to HTML, PDF and XLSX reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newExportCmd(cfg),
		newInstructorsCmd(cfg),
		newCleanCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("❌ report failed")
		os.Exit(1)
	}
}
