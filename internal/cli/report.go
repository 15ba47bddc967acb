package cli

import (
	"errors"
	"fmt"
	"io"
	"lsbmark/pkg/report"

	"github.com/spf13/cobra"
)

var (
	errNoReportDatabase = errors.New("no report database configured, pass --db or set report_database in the config file")
)

func ReportCommands(globals *GlobalOpts) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect the report kept after the last encode",
	}

	reportCmd.AddCommand(showReportCommand(globals))
	return reportCmd
}

func showReportCommand(globals *GlobalOpts) *cobra.Command {
	var (
		database   string
		jsonOutput bool
	)

	command := &cobra.Command{
		Use:     "show",
		Example: "lsbmark report show --db reports.db",
		Short:   "Print the last report stored in the report database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				database = globals.Config.ReportDatabase
			}
			if database == "" {
				return errNoReportDatabase
			}

			sink, err := report.OpenSQLiteSink(cmd.Context(), database)
			if err != nil {
				return err
			}
			defer sink.Close()

			last, err := sink.Last(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), last, jsonOutput)
		},
	}

	command.Flags().StringVar(&database, "db", "", "Sqlite report database. Defaults to report_database from the config file")
	command.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return command
}

func printReport(out io.Writer, r report.Report, jsonOutput bool) error {
	var (
		rendered []byte
		err      error
	)
	if jsonOutput {
		rendered, err = r.JSON()
	} else {
		rendered, err = r.Text()
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(rendered))
	return err
}
