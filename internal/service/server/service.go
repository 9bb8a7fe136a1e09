package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/security-system/internal/api/mqtt"
	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/notifier"
	"github.com/oshokin/security-system/internal/service/alarm"
	"github.com/oshokin/security-system/internal/service/sound"
	"github.com/oshokin/security-system/internal/siren"
)

// components holds everything built from the configuration.
type components struct {
	// controller is the security-system state machine.
	controller *alarm.Controller
	// dispatcher fans cues out to the players.
	dispatcher *notifier.Dispatcher
	// bridge mirrors the state on MQTT, nil when no broker is configured.
	bridge *mqtt.Bridge
	// closers release hardware and connections in reverse order.
	closers []func() error
}

// dependencies lets tests replace the hardware and network constructors.
type dependencies struct {
	openLine func(chip string, offset int) (siren.Line, error)
	dialMQTT func(ctx context.Context, cfg config.MQTTConfig) (mqtt.Client, error)
	sound    []sound.Option
}

func defaultDependencies() dependencies {
	return dependencies{
		openLine: func(chip string, offset int) (siren.Line, error) {
			return siren.OpenLine(chip, offset)
		},
		dialMQTT: func(ctx context.Context, cfg config.MQTTConfig) (mqtt.Client, error) {
			return mqtt.Dial(ctx, cfg)
		},
	}
}

// build wires the cue players, host surfaces and controller together.
// Failing sound or siren setup is logged and leaves that output disabled;
// a configured broker that cannot be reached is fatal.
func build(ctx context.Context, cfg *config.Config, deps dependencies) (*components, error) {
	c := &components{dispatcher: notifier.NewDispatcher()}

	player, err := sound.Load(ctx, cfg.Sounds, deps.sound...)
	if err != nil {
		logger.WarnKV(ctx, "Sound cues disabled", "error", err)
	} else {
		c.dispatcher.AddPlayer(player)
		c.closers = append(c.closers, func() error { return player.Stop(ctx) })
	}

	if cfg.Siren.Line >= 0 {
		relay, err := openRelay(cfg.Siren, deps)
		if err != nil {
			logger.ErrorKV(ctx, "Siren relay disabled", "chip", cfg.Siren.Chip, "line", cfg.Siren.Line, "error", err)
		} else {
			c.dispatcher.AddPlayer(relay)
			c.closers = append(c.closers, relay.Close)
		}
	}

	var hosts alarm.Hosts

	if cfg.MQTT.Broker != "" {
		client, err := deps.dialMQTT(ctx, cfg.MQTT)
		if err != nil {
			c.close(ctx)

			return nil, fmt.Errorf("connect to MQTT broker: %w", err)
		}

		c.closers = append(c.closers, client.Close)
		c.bridge = mqtt.NewBridge(ctx, client, cfg.MQTT.TopicPrefix)
		hosts = append(hosts, c.bridge)
	}

	c.controller = alarm.NewController(ctx, alarm.Settings{
		Name:         cfg.Name,
		ArmDelay:     cfg.ArmDelay(),
		TriggerDelay: cfg.TriggerDelay(),
	}, c.dispatcher, alarm.WithHost(hosts))

	if c.bridge != nil {
		if err = c.bridge.Start(c.controller); err != nil {
			c.close(ctx)

			return nil, fmt.Errorf("start MQTT bridge: %w", err)
		}
	}

	return c, nil
}

func openRelay(cfg config.SirenConfig, deps dependencies) (*siren.Relay, error) {
	line, err := deps.openLine(cfg.Chip, cfg.Line)
	if err != nil {
		return nil, err
	}

	relay, err := siren.NewRelay(line, cfg.ActiveLow)
	if err != nil {
		return nil, errors.Join(err, line.Close())
	}

	return relay, nil
}

// close releases resources in reverse order of acquisition.
func (c *components) close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.WarnKV(ctx, "Failed to release resource", "error", err)
		}
	}

	c.closers = nil
}
