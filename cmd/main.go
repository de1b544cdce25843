package main

import (
	"os"
	"strconv"

	"online-health-consultation/cmd/bootstrap"
	"online-health-consultation/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "ohc",
		Short:        "Online health consultation API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the env config file (default .env)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE:  runServe,
		},
		migrateCommand(),
		profilesCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Initialize application with all dependencies
	app, err := bootstrap.New(cmd.Context(), configPath)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
	return nil
}

func migrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, _, err := bootstrap.LoadConfig(configPath)
				if err != nil {
					return err
				}
				return database.MigrateUp(cfg.DB)
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (one by default)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return err
					}
					steps = n
				}
				cfg, _, err := bootstrap.LoadConfig(configPath)
				if err != nil {
					return err
				}
				return database.MigrateDown(cfg.DB, steps)
			},
		},
	)
	return migrateCmd
}

func profilesCommand() *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Profile maintenance",
	}

	profilesCmd.AddCommand(&cobra.Command{
		Use:   "backfill",
		Short: "Create empty profiles for users that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap.LoadConfig(configPath)
			if err != nil {
				return err
			}
			created, err := bootstrap.BackfillProfiles(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			log.Infof("Created %d profile(s)", created)
			return nil
		},
	})
	return profilesCmd
}
