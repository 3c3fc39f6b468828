package main

import (
	"context"
	"fmt"

	"bloodbank/cmd/config"
	"bloodbank/internal/logger"
	"bloodbank/internal/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootFlags struct {
	configPath string
	logLevel   string
	human      bool
}

// appContext is filled by the root pre-run hook and shared by subcommands.
type appContext struct {
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &appContext{}

	cmd := &cobra.Command{
		Use:           "bloodbank",
		Short:         "Blood bank management API and maintenance tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.LoadConfig(flags.configPath); err != nil {
				return fmt.Errorf("load config %s: %w", flags.configPath, err)
			}

			level := flags.logLevel
			if level == "" {
				level = utils.GetConfig("LOG_LEVEL")
			}
			log, err := logger.New(logger.Options{
				Level:         level,
				HumanReadable: flags.human || utils.GetConfigBool("LOG_HUMAN"),
				Writer:        cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			app.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "Path to the yaml configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Write human readable logs")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newCreateAdminCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// withDB opens the database for the duration of fn.
func withDB(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error) error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(ctx, db)
}
