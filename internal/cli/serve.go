package cli

import (
	"lsbmark/internal/server"

	"github.com/spf13/cobra"
)

func ServeAppCommand(globals *GlobalOpts) *cobra.Command {
	var (
		port        string
		corsOrigins []string
	)

	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve an API to watermark images over the web",
		Example: "lsbmark serve --port 8888 --cors-origin http://localhost:3000",
	}
	applyChannel := channelFlag(command)

	command.RunE = func(cmd *cobra.Command, args []string) error {
		wConfig := globals.Config
		if err := applyChannel(&wConfig); err != nil {
			return err
		}
		return server.StartServer(cmd.Context(), server.Options{
			Port:        port,
			CORSOrigins: corsOrigins,
			Config:      wConfig,
		})
	}

	command.Flags().StringVar(&port, "port", "8080", "Port on which to start the server")
	command.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Origins allowed to call the API. All origins are allowed when unset")

	return command
}
