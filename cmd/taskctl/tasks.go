package main

import (
	"fmt"
	"text/tabwriter"

	"taskboard/client"
	"taskboard/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tasksQuery validation.TaskQueryInput

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks from a running server",
	Long: `List tasks through the REST API. The server URL and token can also be
set with TASKBOARD_SERVER and TASKBOARD_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := viper.GetString("server")
		token := viper.GetString("token")
		if token == "" {
			return fmt.Errorf("a token is required (--token or TASKBOARD_TOKEN)")
		}

		c := client.New(server)
		page, err := c.ListTasks(client.WithToken(cmd.Context(), token), tasksQuery)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDEADLINE\tPROJECT")
		for _, t := range page.Data {
			project := t.ProjectID.String()
			if t.Project != nil {
				project = t.Project.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Deadline.Format("2006-01-02"), project)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d tasks)\n", page.CurrentPage, page.TotalPages, page.TotalCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	flags := tasksCmd.Flags()
	flags.String("server", "http://localhost:5000", "taskboard base URL")
	flags.String("token", "", "bearer token from signup or login")
	_ = viper.BindPFlag("server", flags.Lookup("server"))
	_ = viper.BindPFlag("token", flags.Lookup("token"))
	_ = viper.BindEnv("server", "TASKBOARD_SERVER")
	_ = viper.BindEnv("token", "TASKBOARD_TOKEN")

	flags.StringVar(&tasksQuery.Page, "page", "", "page number")
	flags.StringVar(&tasksQuery.Limit, "limit", "", "page size (max 100)")
	flags.StringVar(&tasksQuery.Project, "project", "", "project id")
	flags.StringVar(&tasksQuery.Member, "member", "", "assigned team member id")
	flags.StringVar(&tasksQuery.Status, "status", "", "to-do, in-progress, done or cancelled")
	flags.StringVar(&tasksQuery.Search, "search", "", "text in title or description")
	flags.StringVar(&tasksQuery.StartDate, "from", "", "earliest deadline")
	flags.StringVar(&tasksQuery.EndDate, "to", "", "latest deadline")
}
