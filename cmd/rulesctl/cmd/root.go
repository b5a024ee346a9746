package cmd

import (
	"github.com/matrukan/tricog/internal/app/config"
	"github.com/matrukan/tricog/internal/app/database"
	"github.com/matrukan/tricog/internal/app/pkg/logger"
	"github.com/matrukan/tricog/internal/app/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	flagDriver string
	flagDBPath string
)

var rootCmd = &cobra.Command{
	Use:           "rulesctl",
	Short:         "Symptom rule store administration",
	Long:          "List, inspect, import and edit symptom rules, and try the text matcher against the stored vocabulary.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "database driver (postgres or sqlite), overrides config")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "sqlite database file, overrides config")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(putCmd)
}

// openRepository connects using the service config plus flag overrides and
// makes sure the schema exists.
func openRepository() (*repository.Repository, *gorm.DB, error) {
	logger.Init("warn", "text")
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	if flagDriver != "" {
		cfg.DB.Driver = flagDriver
	}
	if flagDBPath != "" {
		cfg.DB.Path = flagDBPath
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.New(db)
	if err := repo.Migrate(); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return repo, db, nil
}

// withRepository runs fn against an open repository and closes it afterwards.
func withRepository(fn func(repo *repository.Repository) error) error {
	repo, db, err := openRepository()
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(repo)
}
