package main

import (
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/janitor"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/repositories"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInstructorsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructors",
		Short: "Manage instructor colors in the database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List instructor colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInstructors(cfg, func(repo repositories.InstructorRepo) error {
				instructors, err := repo.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, i := range instructors {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", i.FamilyName, i.Color)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [family-name] [color]",
		Short: "Set the color of an instructor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := colors.ValidateColor(args[1]); err != nil {
				return err
			}
			return withInstructors(cfg, func(repo repositories.InstructorRepo) error {
				return repo.Upsert(cmd.Context(), &models.Instructor{FamilyName: args[0], Color: args[1]})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import [colors.yaml]",
		Short: "Import instructor colors from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := colors.LoadYAML(args[0])
			if err != nil {
				return err
			}
			return withInstructors(cfg, func(repo repositories.InstructorRepo) error {
				for name, color := range table {
					if err := repo.Upsert(cmd.Context(), &models.Instructor{FamilyName: name, Color: color}); err != nil {
						return fmt.Errorf("failed to import %s: %w", name, err)
					}
				}
				log.Info().Int("instructors", len(table)).Msg("✅ Instructor colors imported")
				return nil
			})
		},
	})

	return cmd
}

func withInstructors(cfg *config.Config, fn func(repositories.InstructorRepo) error) error {
	db, err := database.NewDB(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if db.GORM != nil {
		return fn(repositories.NewInstructorRepo(db.GORM))
	}
	return fn(repositories.NewSQLInstructorRepo(db.DB, db.Driver))
}

func newCleanCmd(cfg *config.Config) *cobra.Command {
	var maxAge time.Duration
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale temporary report files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sweeper := &janitor.TmpSweeper{Dir: cfg.TmpDir, MaxAge: maxAge}
			removed, err := sweeper.Sweep(time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d files from %s\n", removed, cfg.TmpDir)
			return nil
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", cfg.TmpMaxAge, "Remove files older than this")
	return cmd
}
