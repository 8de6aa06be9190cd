package cmd

import (
	"fmt"
	"worklog/internal"
	"worklog/pkg"
	"worklog/pkg/jira/model"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringArrayVar(&internal.Config.Users, internal.FlagUsers, nil, "show worklogs of user, repeat or separate by comma for more")
	showCmd.Flags().StringArrayVar(&internal.Config.Projects, internal.FlagProjects, nil, "specify the project key")
	showCmd.Flags().StringVar(&internal.Config.Jql, internal.FlagJql, "", "specify the JQL query selecting the issues")
	showCmd.Flags().StringVar(&internal.Config.Month, internal.FlagMonth, "", "restrict the worklogs to one month (YYYY-MM)")
	showCmd.MarkFlagRequired(internal.FlagUsers)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show worklog",
	Long:  "Print the worklogs of the given users as csv, ready to be imported by report.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users := internal.Config.UserList()
		if len(users) == 0 {
			return fmt.Errorf("at least one user is required, use --%s", internal.FlagUsers)
		}
		location, err := internal.Config.Location()
		if err != nil {
			return err
		}
		jql, from, to, err := internal.Config.Query()
		if err != nil {
			return err
		}
		fetcher, err := newFetcher()
		if err != nil {
			return err
		}
		fetcher.From = inLocation(from, location)
		fetcher.To = inLocation(to, location)
		if _, err = fetcher.Connect(); err != nil {
			return err
		}

		var worklogs pkg.Worklogs
		for _, user := range users {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			items, err := fetcher.Fetch(jql, model.Account(user))
			if err != nil {
				return fmt.Errorf("could not fetch worklogs of %s: %w", user, err)
			}
			worklogs = append(worklogs, items...)
		}
		spec := pkg.NewWorklogCsvSpecification()
		return worklogs.WriteCsv(cmd.OutOrStdout(), &spec)
	},
}
