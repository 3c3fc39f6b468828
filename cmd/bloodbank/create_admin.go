package main

import (
	"context"
	"errors"
	"fmt"

	"bloodbank/cmd/config"
	"bloodbank/domain"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type createAdminFlags struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
}

func (f createAdminFlags) validate() error {
	if f.username == "" || f.email == "" || f.password == "" {
		return errors.New("--username, --email and --password are required")
	}
	return nil
}

func newCreateAdminCmd(app *appContext) *cobra.Command {
	flags := createAdminFlags{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				services, err := config.NewServices(ctx, db, app.log, nil)
				if err != nil {
					return err
				}

				admin, err := services.User.CreateAdmin(ctx, domain.RegisterRequest{
					Username:  flags.username,
					Email:     flags.email,
					Password:  flags.password,
					FirstName: flags.firstName,
					LastName:  flags.lastName,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.username, "username", "", "Admin username")
	cmd.Flags().StringVar(&flags.email, "email", "", "Admin email")
	cmd.Flags().StringVar(&flags.password, "password", "", "Admin password")
	cmd.Flags().StringVar(&flags.firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&flags.lastName, "last-name", "", "Last name")
	return cmd
}
