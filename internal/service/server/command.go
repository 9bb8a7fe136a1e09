package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcapi "github.com/oshokin/security-system/internal/api/grpc/security"
	httpapi "github.com/oshokin/security-system/internal/api/http/security"
	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/logger"
	pb "github.com/oshokin/security-system/internal/pb/v1"
	"github.com/oshokin/security-system/internal/version"
)

// Options controls the security-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// HTTPAddress provides an optional listen address override for the HTTP API.
	HTTPAddress string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

const httpShutdownTimeout = 5 * time.Second

// Run starts the gRPC server, plus the HTTP API and MQTT bridge when configured,
// and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	return run(ctx, opts, defaultDependencies())
}

// run is Run with replaceable hardware and broker constructors.
func run(ctx context.Context, opts *Options, deps dependencies) error {
	ctx = logger.WithName(ctx, "security-server")

	logger.InfoKV(ctx, "Starting security system", version.KV()...)

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	httpAddress := settings.HTTPAddress
	if opts.HTTPAddress != "" {
		httpAddress = opts.HTTPAddress
	}

	parts, err := build(ctx, settings, deps)
	if err != nil {
		return fmt.Errorf("initialise components: %w", err)
	}

	defer parts.close(ctx)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterSecuritySystemServiceServer(grpcServer, grpcapi.NewServer(parts.controller))

	var (
		httpServer *http.Server
		httpLis    net.Listener
	)

	if httpAddress != "" {
		httpLis, err = lc.Listen(ctx, "tcp", httpAddress)
		if err != nil {
			_ = lis.Close()

			return fmt.Errorf("listen on %s: %w", httpAddress, err)
		}

		httpServer = &http.Server{
			Handler:           httpapi.NewHandler(ctx, parts.controller),
			ReadHeaderTimeout: httpShutdownTimeout,
		}
	}

	logger.InfoKV(ctx, "Security system listening",
		"name", settings.Name,
		"listen_address", lis.Addr().String(),
		"http_address", httpAddress,
		"arm_seconds", settings.ArmSeconds,
		"trigger_seconds", settings.TriggerSeconds)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	if httpServer != nil {
		g.Go(func() error {
			if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve HTTP: %w", err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info(ctx, "Shutting down servers")

		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.WarnKV(ctx, "HTTP shutdown failed", "error", err)
			}
		}

		grpcServer.GracefulStop()

		return nil
	})

	if err = g.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Servers stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
