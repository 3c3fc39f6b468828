package main

import (
	"context"
	"fmt"

	"bloodbank/cmd/config"
	"bloodbank/cmd/database/seed"
	"bloodbank/internal/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newSeedCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample banks, donors and requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				repos := config.NewRepositories(db)
				seeder := &seed.Seeder{
					Users:      repos.Users,
					Banks:      repos.BloodBanks,
					Donors:     repos.Donors,
					Donations:  repos.Donations,
					Requests:   repos.BloodRequest,
					Transactor: repos.Transactor,
					Log:        app.log,
					AdminEmail: utils.GetConfig("ADMIN_EMAIL"),
				}
				if err := seeder.Run(ctx); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Sample data created.")
				fmt.Fprintf(out, "  Admin: %s / %s\n", seed.AdminUsername, seed.AdminPassword)
				fmt.Fprintf(out, "  Donor password: %s\n", seed.DonorPassword)
				return nil
			})
		},
	}
}
