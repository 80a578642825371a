package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title SimTrack API
// @version 1.0
// @description Simulation request tracking with project hour budgets.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var rootCmd = &cobra.Command{
	Use:   "simtrack",
	Short: "Simulation request tracking service",
	Long: `simtrack tracks simulation requests against project hour budgets.
Run "simtrack serve" to start the API server.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
