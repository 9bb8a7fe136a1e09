package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-system/internal/api/mqtt"
	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/service/sound"
	"github.com/oshokin/security-system/internal/siren"
)

var errNoChip = errors.New("no such chip")

// testDeps replaces the hardware, broker and player process with fakes.
func testDeps(line *siren.FakeLine, client *mqtt.FakeClient) dependencies {
	return dependencies{
		openLine: func(string, int) (siren.Line, error) {
			if line == nil {
				return nil, errNoChip
			}

			return line, nil
		},
		dialMQTT: func(context.Context, config.MQTTConfig) (mqtt.Client, error) {
			return client, nil
		},
		sound: []sound.Option{sound.WithRunFunc(func(ctx context.Context, _ string, _ ...string) error {
			<-ctx.Done()
			return nil
		})},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	sirenFile := filepath.Join(t.TempDir(), "siren.mp3")
	require.NoError(t, os.WriteFile(sirenFile, []byte("mp3"), 0o600))

	cfg := config.Default()
	cfg.Sounds.Siren = sirenFile
	cfg.Siren.Line = 17
	cfg.MQTT.Broker = "tcp://broker:1883"
	cfg.MQTT.TopicPrefix = "house"

	return cfg
}

// TestBuild_WiresEverything connects the siren relay and MQTT bridge to the controller.
func TestBuild_WiresEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	line := new(siren.FakeLine)
	client := mqtt.NewFakeClient()

	parts, err := build(ctx, testConfig(t), testDeps(line, client))
	require.NoError(t, err)
	require.NotNil(t, parts.bridge)

	require.NoError(t, parts.controller.SetSwitchOn(ctx, true))
	require.Equal(t, domain.CurrentAlarmTriggered, parts.controller.CurrentState())
	require.Equal(t, 1, line.Last())

	got, ok := client.Last("house/current")
	require.True(t, ok)
	require.Equal(t, "alarm_triggered", got)

	require.NoError(t, parts.controller.SetTargetState(ctx, domain.ModeOff))
	require.Equal(t, 0, line.Last())

	parts.close(ctx)
	require.True(t, line.Closed)
	require.True(t, client.Closed)
}

// TestBuild_OptionalOutputs keeps running without sounds, siren or broker.
func TestBuild_OptionalOutputs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Siren.Line = 4

	parts, err := build(context.Background(), cfg, testDeps(nil, nil))
	require.NoError(t, err)
	require.Nil(t, parts.bridge)
	require.Empty(t, parts.closers)
	require.Equal(t, domain.CurrentOff, parts.controller.CurrentState())
}

// TestBuild_BrokerFailure fails when the configured broker rejects the subscriptions.
func TestBuild_BrokerFailure(t *testing.T) {
	t.Parallel()

	client := mqtt.NewFakeClient()
	client.SubscribeError = errNoChip
	line := new(siren.FakeLine)

	_, err := build(context.Background(), testConfig(t), testDeps(line, client))
	require.ErrorIs(t, err, errNoChip)
	require.True(t, client.Closed)
	require.True(t, line.Closed)
}

// TestResolveListenAddress keeps only the configured port unless overridden.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	addr, err := resolveListenAddress("example.com:50051", "")
	require.NoError(t, err)
	require.Equal(t, ":50051", addr)

	addr, err = resolveListenAddress("example.com:50051", "127.0.0.1:9000")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", addr)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("no-port", "")
	require.Error(t, err)
}
