package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the lsbmark command tree. Profilers requested through the persistent flags are started
// before the selected command runs and must be stopped by the caller with StopProfilers
func NewRootCommand() *cobra.Command {
	globals := &GlobalOpts{}

	rootCmd := &cobra.Command{
		Use:           "lsbmark",
		Short:         "Hide text watermarks in the least significant bits of images",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := globals.resolve(cmd); err != nil {
				return err
			}
			return StartProfilers(globals.CPUProfile, globals.MemProfileDir)
		},
	}
	globals.addFlags(rootCmd)

	rootCmd.AddCommand(
		ImageCommands(globals),
		ReportCommands(globals),
		ServeAppCommand(globals),
		WatchCommand(globals),
	)
	return rootCmd
}
