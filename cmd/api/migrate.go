package main

import (
	"fmt"
	"log"

	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/config/db"
	"github.com/linskybing/simtrack/internal/migrations"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()

		gdb, err := db.Open(config.DSN())
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		if err := migrations.Run(gdb); err != nil {
			return err
		}
		log.Println("Schema is up to date")
		return nil
	},
}
