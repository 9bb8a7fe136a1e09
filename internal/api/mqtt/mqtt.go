// Package mqtt mirrors the security-system properties on an MQTT broker and
// accepts commands from it.
//
// State topics are retained so new subscribers see the latest values:
//
//	<prefix>/current     off|home|away|night|alarm_triggered
//	<prefix>/target      off|home|away|night
//	<prefix>/switch      true|false
//
// Command topics:
//
//	<prefix>/target/set  mode name
//	<prefix>/switch/set  on|off|true|false
package mqtt

import (
	"context"
	"errors"
	"strconv"
	"strings"

	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/service/alarm"
)

// Topic suffixes below the configured prefix.
const (
	TopicCurrent   = "current"
	TopicTarget    = "target"
	TopicSwitch    = "switch"
	TopicTargetSet = "target/set"
	TopicSwitchSet = "switch/set"
)

// Client is the subset of an MQTT client the bridge needs.
type Client interface {
	// Publish sends payload to topic without waiting for the broker.
	Publish(topic string, retained bool, payload []byte) error
	// Subscribe registers handler for messages on topic.
	Subscribe(topic string, handler func(topic string, payload []byte)) error
	// Close disconnects from the broker.
	Close() error
}

// Service abstracts the controller operations the bridge depends on.
type Service interface {
	Status() domain.Status
	SetTargetState(ctx context.Context, mode domain.Mode) error
	SetSwitchOn(ctx context.Context, on bool) error
}

// Bridge publishes property changes and forwards commands to the controller.
// It implements alarm.Host.
type Bridge struct {
	// client talks to the broker.
	client Client
	// prefix is prepended to every topic.
	prefix string
	// ctx carries the logger for commands.
	ctx context.Context
}

// NewBridge creates a bridge publishing under prefix.
func NewBridge(ctx context.Context, client Client, prefix string) *Bridge {
	return &Bridge{
		client: client,
		prefix: strings.TrimSuffix(prefix, "/"),
		ctx:    logger.WithName(ctx, "mqtt"),
	}
}

// Topic returns the full topic for a suffix.
func (b *Bridge) Topic(suffix string) string {
	return b.prefix + "/" + suffix
}

// Start publishes the initial state and subscribes to the command topics.
func (b *Bridge) Start(service Service) error {
	status := service.Status()
	b.UpdateCurrentState(b.ctx, status.Current)
	b.UpdateTargetState(b.ctx, status.Target)
	b.UpdateSwitchOn(b.ctx, status.SwitchOn)

	handlers := map[string]func(topic string, payload []byte){
		b.Topic(TopicTargetSet): func(_ string, payload []byte) { b.handleTarget(service, payload) },
		b.Topic(TopicSwitchSet): func(_ string, payload []byte) { b.handleSwitch(service, payload) },
	}

	for topic, handler := range handlers {
		if err := b.client.Subscribe(topic, handler); err != nil {
			return err
		}
	}

	logger.InfoKV(b.ctx, "MQTT bridge started", "prefix", b.prefix)

	return nil
}

// UpdateCurrentState publishes the current state.
func (b *Bridge) UpdateCurrentState(ctx context.Context, state domain.CurrentState) {
	b.publish(ctx, TopicCurrent, state.String())
}

// UpdateTargetState publishes the target mode.
func (b *Bridge) UpdateTargetState(ctx context.Context, mode domain.Mode) {
	b.publish(ctx, TopicTarget, mode.String())
}

// UpdateSwitchOn publishes the switch state.
func (b *Bridge) UpdateSwitchOn(ctx context.Context, on bool) {
	b.publish(ctx, TopicSwitch, strconv.FormatBool(on))
}

func (b *Bridge) publish(ctx context.Context, suffix, value string) {
	if err := b.client.Publish(b.Topic(suffix), true, []byte(value)); err != nil {
		logger.ErrorKV(ctx, "Failed to publish state", "topic", b.Topic(suffix), "error", err)
	}
}

// handleTarget forwards a mode command. The controller answers only after the
// arm delay, so the command runs in its own goroutine and the client's
// delivery goroutine is released at once.
func (b *Bridge) handleTarget(service Service, payload []byte) {
	mode, err := domain.ParseMode(string(payload))
	if err != nil {
		logger.WarnKV(b.ctx, "Ignoring target command", "payload", string(payload), "error", err)
		return
	}

	go func() {
		err := service.SetTargetState(b.ctx, mode)
		switch {
		case err == nil:
		case errors.Is(err, alarm.ErrTransitionCanceled):
			logger.InfoKV(b.ctx, "Target command superseded", "mode", mode)
		default:
			logger.ErrorKV(b.ctx, "Target command failed", "mode", mode, "error", err)
		}
	}()
}

func (b *Bridge) handleSwitch(service Service, payload []byte) {
	on, err := domain.ParseSwitch(string(payload))
	if err != nil {
		logger.WarnKV(b.ctx, "Ignoring switch command", "payload", string(payload), "error", err)
		return
	}

	if err = service.SetSwitchOn(b.ctx, on); err != nil {
		logger.ErrorKV(b.ctx, "Switch command failed", "on", on, "error", err)
	}
}

// compile-time check that the bridge can mirror the controller.
var _ alarm.Host = (*Bridge)(nil)
