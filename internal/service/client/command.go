package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	grpcapi "github.com/oshokin/security-system/internal/api/grpc/security"
	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/service/common"
)

// Options configures how securityctl reaches the server.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// JSON prints the status as protojson instead of text.
	JSON bool

	// Out receives the printed result.
	Out io.Writer
}

// ErrSuperseded is returned when another request replaced ours before it was applied.
var ErrSuperseded = errors.New("request superseded by a newer one")

// connect loads settings and dials the server. The arm wait is taken from the
// configured arm delay so SetTargetState does not time out early.
func connect(ctx context.Context, opts *Options) (*common.Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	clientOpts := []common.Option{
		common.WithCallTimeout(cfg.Timeout),
		common.WithWaitTimeout(cfg.ArmDelay()),
	}

	if actor, err := common.DetectActor(); err == nil {
		clientOpts = append(clientOpts, common.WithActor(actor))
	} else {
		logger.WarnKV(ctx, "Cannot detect actor", "error", err)
	}

	logger.DebugKV(ctx, "Connecting", "server_address", serverAddress)

	return common.Dial(ctx, serverAddress, clientOpts...)
}

// Status prints the status snapshot.
func Status(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "securityctl")

	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	raw, err := client.GetRawStatus(ctx)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(raw)
		if err != nil {
			return fmt.Errorf("encode status: %w", err)
		}

		_, err = fmt.Fprintln(opts.Out, string(data))

		return err
	}

	st, err := grpcapi.FromProtoStatus(raw)
	if err != nil {
		return err
	}

	_, err = io.WriteString(opts.Out, FormatStatus(st))

	return err
}

// SetTarget requests mode and waits until the server applied it.
func SetTarget(ctx context.Context, opts *Options, mode domain.Mode) error {
	ctx = logger.WithName(ctx, "securityctl")

	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Requesting target state", "mode", mode)

	current, err := client.SetTargetState(ctx, mode)
	if err != nil {
		if status.Code(err) == codes.Aborted {
			return ErrSuperseded
		}

		return err
	}

	_, err = fmt.Fprintf(opts.Out, "Current state: %s\n", current.Label())

	return err
}

// SetSwitch writes the siren switch.
func SetSwitch(ctx context.Context, opts *Options, on bool) error {
	ctx = logger.WithName(ctx, "securityctl")

	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Writing siren switch", "on", on)

	result, err := client.SetSwitchOn(ctx, on)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(opts.Out, "Siren switch: %s\n", onOff(result))

	return err
}

// FormatStatus renders a status snapshot as text.
func FormatStatus(st domain.Status) string {
	text := fmt.Sprintf("%s\n  current: %s\n  target:  %s\n  switch:  %s\n",
		st.Name, st.Current.Label(), st.Target.Label(), onOff(st.SwitchOn))

	if st.HasPending {
		kind := "arming"
		if st.PendingTrigger {
			kind = "trigger countdown"
		}

		text += fmt.Sprintf("  pending: %s to %s at %s\n",
			kind, st.PendingState.Label(), st.PendingDeadline.Local().Format(time.TimeOnly))
	}

	return text
}

func onOff(on bool) string {
	if on {
		return "on"
	}

	return "off"
}
