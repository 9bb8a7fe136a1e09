package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/service/server"
	"github.com/oshokin/security-system/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// httpAddress overrides the HTTP API listen address.
	httpAddress string

	// rootCmd represents the base command for running the security-system server.
	rootCmd = &cobra.Command{
		Use:   "security-server [listen-address]",
		Short: "Run the security-system state machine and its gRPC, HTTP and MQTT surfaces.",
		Long: `Starts the security-system server.

The server keeps the current state, target state and siren switch, applies the
configured arm and trigger delays, plays the configured sound cues and drives
the siren relay. Only the port from server_addr is used for listening
(e.g. :50051); a listen address argument overrides it.
The HTTP API and MQTT bridge are started when http_addr and mqtt.broker are set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				HTTPAddress:   httpAddress,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the security-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&httpAddress, "http", "", "HTTP API listen address, overrides http_addr")
}
