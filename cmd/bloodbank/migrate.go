package main

import (
	"context"

	migration "bloodbank/cmd/database/migrate"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				return migration.Migrate(db, app.log)
			})
		},
	}
}
