package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lintFile string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a fixture file against the API validation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := readFixture(lintFile)
		if err != nil {
			return err
		}

		problems := lintFixture(f)
		out := cmd.OutOrStdout()
		for _, p := range problems {
			fmt.Fprintf(out, "%s:%s\n", lintFile, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problem(s) found", len(problems))
		}
		fmt.Fprintf(out, "%s: OK (%d team members, %d projects, %d tasks)\n",
			lintFile, len(f.TeamMembers), len(f.Projects), len(f.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().StringVarP(&lintFile, "file", "f", "fixtures.json", "fixture file to check")
}
