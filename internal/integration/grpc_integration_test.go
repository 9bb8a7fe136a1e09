package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/service/client"
	"github.com/oshokin/security-system/internal/service/common"
	"github.com/oshokin/security-system/internal/service/server"
)

// freeAddr reserves a free local port.
func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startServer runs the real server with a temporary config and waits until it accepts connections.
func startServer(t *testing.T, armSeconds int) (cfgPath, grpcAddr, httpAddr string) {
	t.Helper()

	grpcAddr, httpAddr = freeAddr(t), freeAddr(t)
	cfgPath = filepath.Join(t.TempDir(), "security-system.yaml")

	cfg := config.Default()
	cfg.Name = "Integration"
	cfg.ArmSeconds = armSeconds
	cfg.ServerAddress = grpcAddr
	cfg.HTTPAddress = httpAddr
	cfg.Timeout = 3 * time.Second
	cfg.Sounds.Siren = filepath.Join(t.TempDir(), "missing.mp3")

	require.NoError(t, config.Save(cfgPath, cfg))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{ConfigPath: cfgPath, ListenAddress: grpcAddr})
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", httpAddr, 100*time.Millisecond)
		if err != nil {
			return false
		}

		_ = conn.Close()

		return true
	}, 5*time.Second, 50*time.Millisecond)

	return cfgPath, grpcAddr, httpAddr
}

// TestGRPC_Roundtrip starts the real server and drives it over gRPC.
func TestGRPC_Roundtrip(t *testing.T) {
	t.Parallel()

	_, addr, _ := startServer(t, 0)
	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second), common.WithActor("it@test"))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	st, err := c.GetStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "Integration", st.Name)
	require.Equal(t, domain.CurrentOff, st.Current)

	current, err := c.SetTargetState(ctx, domain.ModeNight)
	require.NoError(t, err)
	require.Equal(t, domain.CurrentNight, current)

	on, err := c.SetSwitchOn(ctx, true)
	require.NoError(t, err)
	require.True(t, on)

	current, err = c.GetCurrentState(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.CurrentAlarmTriggered, current)

	current, err = c.SetTargetState(ctx, domain.ModeOff)
	require.NoError(t, err)
	require.Equal(t, domain.CurrentOff, current)

	on, err = c.GetSwitchOn(ctx)
	require.NoError(t, err)
	require.False(t, on)
}

// TestGRPC_ArmDelay waits out a real one-second arm delay through securityctl operations.
func TestGRPC_ArmDelay(t *testing.T) {
	t.Parallel()

	cfgPath, addr, httpAddr := startServer(t, 1)

	var out bytes.Buffer

	opts := &client.Options{ConfigPath: cfgPath, ServerAddress: addr, Out: &out}

	started := time.Now()
	require.NoError(t, client.SetTarget(context.Background(), opts, domain.ModeAway))
	require.GreaterOrEqual(t, time.Since(started), time.Second)
	require.Contains(t, out.String(), "Current state: Away")

	resp, err := http.Get("http://" + httpAddr + "/status") //nolint:noctx // Test request.
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "away", body["current"])

	out.Reset()
	opts.JSON = true
	require.NoError(t, client.Status(context.Background(), opts))

	body = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	require.Equal(t, "away", body["current"])
	require.Equal(t, "Integration", body["name"])
}
