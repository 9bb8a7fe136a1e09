package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/service/client"
	"github.com/oshokin/security-system/internal/service/watcher"
	"github.com/oshokin/security-system/internal/version"
)

// errNotArmedMode is returned when arm is given "off"; disarm is a separate command.
var errNotArmedMode = errors.New("arm needs one of home, away or night")

var (
	// configPath to the configuration YAML file.
	configPath string
	// serverAddress overrides server_addr from the configuration.
	serverAddress string
	// jsonOutput prints the status as JSON.
	jsonOutput bool
	// pollInterval is the watch polling interval.
	pollInterval = watcher.DefaultPollInterval

	rootCmd = &cobra.Command{
		Use:          "securityctl",
		Short:        "Control a security-system server.",
		SilenceUsage: true,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print current state, target state and siren switch.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.JSON = jsonOutput

			return client.Status(signalContext(cmd), opts)
		},
	}

	armCmd = &cobra.Command{
		Use:       "arm <home|away|night>",
		Short:     "Arm the system and wait until the arm delay has passed.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"home", "away", "night"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseMode(args[0])
			if err != nil {
				return err
			}

			if !mode.Armed() {
				return errNotArmedMode
			}

			return client.SetTarget(signalContext(cmd), options(cmd), mode)
		},
	}

	disarmCmd = &cobra.Command{
		Use:   "disarm",
		Short: "Disarm the system, silencing a sounding alarm.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return client.SetTarget(signalContext(cmd), options(cmd), domain.ModeOff)
		},
	}

	switchCmd = &cobra.Command{
		Use:       "switch <on|off>",
		Short:     "Write the siren switch.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := domain.ParseSwitch(args[0])
			if err != nil {
				return err
			}

			return client.SetSwitch(signalContext(cmd), options(cmd), on)
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Poll the server and log every state change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return watcher.Run(signalContext(cmd), &watcher.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				PollInterval:  pollInterval,
			})
		},
	}
)

func options(cmd *cobra.Command) *client.Options {
	return &client.Options{
		ConfigPath:    configPath,
		ServerAddress: serverAddress,
		Out:           cmd.OutOrStdout(),
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) context.Context {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	cobra.OnFinalize(stop)

	return ctx
}

// Execute runs the securityctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "server address, overrides server_addr")

	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the status as JSON")
	watchCmd.Flags().DurationVarP(&pollInterval, "interval", "i", watcher.DefaultPollInterval, "polling interval")

	rootCmd.AddCommand(statusCmd, armCmd, disarmCmd, switchCmd, watchCmd)
}
