package cmd

import (
	"fmt"
	"os"
	"time"
	"worklog/internal"
	"worklog/pkg"
	"worklog/pkg/cli"
	"worklog/pkg/jira"
	"worklog/pkg/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringArrayVar(&internal.Config.Users, internal.FlagUsers, nil, "specify a user to report, repeat or separate by comma for more")
	reportCmd.Flags().StringArrayVar(&internal.Config.Projects, internal.FlagProjects, nil, "restrict the report to a project key")
	reportCmd.Flags().StringVar(&internal.Config.Jql, internal.FlagJql, "", "specify the JQL query selecting the issues")
	reportCmd.Flags().StringVar(&internal.Config.Month, internal.FlagMonth, "", "restrict the report to one month (YYYY-MM)")
	reportCmd.Flags().StringVarP(&internal.Config.Output, internal.FlagOutput, "o", "reports", "specify the directory the report is written to")
	reportCmd.Flags().StringVar(&internal.Config.Import, internal.FlagImport, "", "read worklogs from a csv file written by show instead of Jira")
	reportCmd.Flags().BoolVarP(&internal.Config.Force, internal.FlagForce, "f", false, "do not ask for confirmation")
	reportCmd.MarkFlagRequired(internal.FlagUsers)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Create a worklog report",
	Long:  "Create an Excel report of the worklogs of the given users on the issues matching the query.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users := internal.Config.UserList()
		if len(users) == 0 {
			return fmt.Errorf("at least one user is required, use --%s", internal.FlagUsers)
		}
		if len(users) > internal.ConfirmationThreshold && !internal.Config.Force {
			question := fmt.Sprintf("Create a report for %d users", len(users))
			if !cli.Confirmation(os.Stdin, cmd.OutOrStdout(), question) {
				return nil
			}
		}

		source, query, err := reportSource()
		if err != nil {
			return err
		}
		generator := report.Generator{
			Source: source,
			Status: statusSink(),
			Output: internal.Config.Output,
			Now:    time.Now,
		}
		result, err := generator.Generate(cmd.Context(), users, query)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.Summary(result))
		return nil
	},
}

// reportSource returns where worklogs come from and the query shown in the report.
func reportSource() (report.Source, string, error) {
	location, err := internal.Config.Location()
	if err != nil {
		return nil, "", err
	}
	if internal.Config.Import != "" {
		data, err := os.ReadFile(internal.Config.Import)
		if err != nil {
			return nil, "", err
		}
		spec := pkg.NewWorklogCsvSpecification()
		worklogs, err := pkg.Worklogs{}.ReadCsv(data, &spec, location)
		if err != nil {
			return nil, "", fmt.Errorf("could not read %s: %w", internal.Config.Import, err)
		}
		if internal.Config.Month != "" {
			from, to, err := pkg.ParseMonth(internal.Config.Month)
			if err != nil {
				return nil, "", err
			}
			worklogs = worklogs.Between(inLocation(from, location), inLocation(to, location))
		}
		log.Debug().Int("worklogs", len(worklogs)).Str("file", internal.Config.Import).Msg("Imported worklogs")
		return report.Imported{Worklogs: worklogs}, "import: " + internal.Config.Import, nil
	}

	jql, from, to, err := internal.Config.Query()
	if err != nil {
		return nil, "", err
	}
	fetcher, err := newFetcher()
	if err != nil {
		return nil, "", err
	}
	fetcher.From = inLocation(from, location)
	fetcher.To = inLocation(to, location)
	return jira.Source{Fetcher: fetcher, Jql: jql}, jql.Build(), nil
}
