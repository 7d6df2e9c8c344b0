package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_service/internal/config"
	pkgdb "github.com/Skotchmaster/product_service/internal/db"
)

const adminTimeout = 30 * time.Second

// withDB opens the configured database for a one-shot admin command.
func withDB(fn func(ctx context.Context, db *gorm.DB) error) error {
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pkgdb.Close(db)

	return fn(ctx, db)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the products and categories tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *gorm.DB) error {
			if err := pkgdb.CreateSchema(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tables created!")
			return nil
		})
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the products and categories tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *gorm.DB) error {
			if err := pkgdb.DropSchema(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tables dropped!")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *gorm.DB) error {
			if _, err := pkgdb.Seed(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tables seeded!")
			return nil
		})
	},
}
