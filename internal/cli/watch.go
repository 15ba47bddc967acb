package cli

import (
	"fmt"
	"lsbmark/internal/logging"
	"lsbmark/internal/watch"

	"github.com/spf13/cobra"
)

func WatchCommand(globals *GlobalOpts) *cobra.Command {
	var (
		dir    string
		settle = watch.DefaultSettleTime
	)

	command := &cobra.Command{
		Use:     "watch",
		Short:   "Decode every image written to a directory",
		Example: "lsbmark watch --dir ./incoming",
	}
	applyChannel := channelFlag(command)

	command.RunE = func(cmd *cobra.Command, args []string) error {
		wConfig := globals.Config
		if err := applyChannel(&wConfig); err != nil {
			return err
		}

		watcher, err := watch.New(dir, wConfig, settle)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		logger := logging.BuildLogger()
		return watcher.Run(cmd.Context(), func(event watch.Event) {
			if event.Err != nil {
				logger.WithError(event.Err).Warn("Could not decode image", "path", event.Path)
				return
			}
			fmt.Fprintf(out, "%s: %s\n", event.Path, event.Result)
		})
	}

	command.Flags().StringVar(&dir, "dir", "", "Directory to watch")
	command.Flags().DurationVar(&settle, "settle", watch.DefaultSettleTime, "How long a file has to stay unchanged before it is decoded")
	MarkFlagsRequired(command, "dir")

	return command
}
