package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Operator tool for the taskboard API",
	Long: `taskctl seeds a database from a fixture file, checks fixture files
without touching a database, and lists tasks from a running server.

Database settings come from the same environment variables (and .env file)
as the server.`,
	SilenceUsage: true,
}

var envFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file read before the environment")
}
