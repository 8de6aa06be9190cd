package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"
	"worklog/internal"
	"worklog/pkg"
	"worklog/pkg/jira"
	"worklog/pkg/status"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

func init() {
	cobra.OnInitialize(func() {
		if cfgFile != "" {
			// Use Configuration file from the flag.
			viper.SetConfigFile(cfgFile)
		}
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, internal.FlagConfiguration, "", "specify the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&internal.Config.Http, internal.FlagHttp, "k", false, "use http instead of https")
	rootCmd.PersistentFlags().StringVarP(&internal.Config.Host, internal.FlagHost, "H", "", "specify the Jira host, optionally with a context path")
	rootCmd.PersistentFlags().StringVarP(&internal.Config.Username, internal.FlagUsername, "u", "", "specify the username to use for server authentication")
	rootCmd.PersistentFlags().StringVarP(&internal.Config.Password, internal.FlagPassword, "p", "", "specify the password to use for server authentication")
	rootCmd.PersistentFlags().StringVarP(&internal.Config.Token, internal.FlagToken, "t", "", "specify a personal access token, used instead of username and password")
	rootCmd.PersistentFlags().StringVar(&internal.Config.Api, internal.FlagApi, jira.VersionServer, "specify the Jira REST API version, 2 for server and 3 for cloud")
	rootCmd.PersistentFlags().DurationVar(&internal.Config.Timeout, internal.FlagTimeout, 30*time.Second, "specify the timeout of a single http request")
	rootCmd.PersistentFlags().StringVar(&internal.Config.Timezone, internal.FlagTimezone, "", "convert worklog timestamps into this IANA timezone instead of using them as written")
	rootCmd.PersistentFlags().BoolVarP(&internal.Config.Verbose, internal.FlagVerbose, "v", false, "enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:     "worklog",
	Short:   "Worklog creates worklog reports from Jira",
	Long:    "Worklog collects the worklogs of one or more users from Atlassian Jira and compiles them into an Excel report.",
	Args:    cobra.NoArgs,
	Version: internal.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			if err := bindFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return fmt.Errorf("can't read configuration. %s", err.Error())
				}
			}
			if err := viper.Unmarshal(&internal.Config); err != nil {
				return fmt.Errorf("can't read configuration. %s", err.Error())
			}
		}
		// Remove required annotation if the user has that flag given with viper.
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			annotations := flag.Annotations[cobra.BashCompOneRequiredFlag]
			if annotations != nil && annotations[0] == "true" && viper.IsSet(configKey(flag.Name)) {
				delete(flag.Annotations, cobra.BashCompOneRequiredFlag)
			}
		})
		setupLogger(internal.Config.Verbose)
		return nil
	},
}

// configKey maps flag names to the keys used in configuration files.
func configKey(flag string) string {
	switch flag {
	case internal.FlagUsers:
		return "users"
	case internal.FlagProjects:
		return "projects"
	default:
		return flag
	}
}

func bindFlags(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(flag *pflag.Flag) {
		if err == nil {
			err = viper.BindPFlag(configKey(flag.Name), flag)
		}
	})
	return err
}

func setupLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func statusSink() status.Sink {
	return status.Log{Logger: log.With().Str("component", "report").Logger()}
}

// newFetcher connects the configured tracker with its client.
func newFetcher() (jira.Fetcher, error) {
	location, err := internal.Config.Location()
	if err != nil {
		return jira.Fetcher{}, err
	}
	server := internal.Config.Server()
	if server.Host == "" {
		return jira.Fetcher{}, fmt.Errorf("required flag \"%s\" not set", internal.FlagHost)
	}
	api, err := jira.NewApi(internal.Config.Api, pkg.NewHttpClient(internal.Config.Timeout), server, internal.Config.Credentials())
	if err != nil {
		return jira.Fetcher{}, err
	}
	log.Debug().Str("server", server.String()).Str("api", internal.Config.Api).Msg("Using Jira")
	return jira.Fetcher{Api: api, Status: statusSink(), Location: location}, nil
}

// inLocation moves a month boundary into the configured timezone.
func inLocation(t time.Time, location *time.Location) time.Time {
	if t.IsZero() || location == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("Worklog failed")
	}
}
