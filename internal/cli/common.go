package cli

import (
	"errors"
	"io"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

const (
	ExitNoWatermark = 2
)

var (
	// ErrNoWatermark is returned by the decode command after it has printed the not found message, so the process can
	// exit with ExitNoWatermark without printing anything else
	ErrNoWatermark = errors.New("no watermark found")
)

// GlobalOpts holds the persistent flags and the configuration resolved from them before any command runs
type GlobalOpts struct {
	ConfigFile    string
	LogLevel      string
	CPUProfile    string
	MemProfileDir string

	Config config.WatermarkConfig
}

func (g *GlobalOpts) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.ConfigFile, "config", "", "Configuration file (toml, yaml or json). Flags take precedence over it")
	cmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", config.DefaultLogLevel, "Log level. Options are debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&g.CPUProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	cmd.PersistentFlags().StringVar(&g.MemProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")
}

// resolve builds the configuration in order of precedence: defaults, then the config file, then flags
func (g *GlobalOpts) resolve(cmd *cobra.Command) error {
	wConfig := config.DefaultWatermarkConfig()
	if g.ConfigFile != "" {
		if err := config.ApplyFile(&wConfig, g.ConfigFile); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("log-level") {
		level, err := config.ParseLogLevel(g.LogLevel)
		if err != nil {
			return err
		}
		wConfig.LogLevel = level
	}

	logging.SetLevel(wConfig.LogLevel)
	g.Config = wConfig
	return nil
}

// channelFlag registers --channel on cmd and returns a function applying it to a config when it was set
func channelFlag(cmd *cobra.Command) func(*config.WatermarkConfig) error {
	var channel string
	cmd.Flags().StringVar(&channel, "channel", "red", "Colour channel carrying the watermark. Options are red, green, blue")

	return func(wConfig *config.WatermarkConfig) error {
		if !cmd.Flags().Changed("channel") {
			return nil
		}
		parsed, err := config.ParseChannel(channel)
		if err != nil {
			return err
		}
		wConfig.Channel = parsed
		return nil
	}
}

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

// NewSpinner returns a spinner drawing on w. It stays silent when stdout is not a terminal
func NewSpinner(w io.Writer) *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond, spinner.WithWriter(w))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
