// Package watcher polls the security-system server and logs every change of
// the current state, target state and siren switch.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between status checks.
	PollInterval time.Duration
}

// DefaultPollInterval is used when no interval is given.
const DefaultPollInterval = 2 * time.Second

// StatusSource provides status snapshots.
type StatusSource interface {
	GetStatus(ctx context.Context) (domain.Status, error)
}

// Change describes the difference between two consecutive snapshots.
type Change struct {
	Previous domain.Status
	Current  domain.Status
}

// Run dials the server and watches it until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "watcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching security system", "server_address", serverAddress)

	Watch(ctx, client, opts.PollInterval, func(c Change) { logChange(ctx, c) })

	return nil
}

// Watch polls source every interval and calls onChange whenever a watched
// property differs from the previous snapshot. The first successful poll is
// always reported. Poll errors are logged and polling continues.
func Watch(ctx context.Context, source StatusSource, interval time.Duration, onChange func(Change)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var (
		last  domain.Status
		known bool
	)

	poll := func() {
		st, err := source.GetStatus(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.ErrorKV(ctx, "Get status failed", "error", err)
			}

			return
		}

		if known && !changed(last, st) {
			return
		}

		onChange(Change{Previous: last, Current: st})

		last, known = st, true
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return
		case <-ticker.C:
			poll()
		}
	}
}

func changed(a, b domain.Status) bool {
	return a.Current != b.Current ||
		a.Target != b.Target ||
		a.SwitchOn != b.SwitchOn ||
		a.HasPending != b.HasPending ||
		a.PendingState != b.PendingState
}

func logChange(ctx context.Context, c Change) {
	kvs := []any{
		"current", c.Current.Current,
		"target", c.Current.Target,
		"switch_on", c.Current.SwitchOn,
	}

	if c.Current.HasPending {
		kvs = append(kvs,
			"pending", c.Current.PendingState,
			"deadline", c.Current.PendingDeadline.Format(time.RFC3339))
	}

	logger.InfoKV(ctx, "Security system state", kvs...)

	if c.Current.Current == domain.CurrentAlarmTriggered && c.Previous.Current != domain.CurrentAlarmTriggered {
		logger.WarnKV(ctx, "Alarm triggered", "name", c.Current.Name)
	}
}
