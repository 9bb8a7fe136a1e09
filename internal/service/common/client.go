//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	grpcapi "github.com/oshokin/security-system/internal/api/grpc/security"
	"github.com/oshokin/security-system/internal/config"
	domain "github.com/oshokin/security-system/internal/domain/security"
	pb "github.com/oshokin/security-system/internal/pb/v1"
)

// Client wraps the gRPC SecuritySystemService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the server.
	conn *grpc.ClientConn
	// api is the SecuritySystemService client interface.
	api pb.SecuritySystemServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// waitTimeout is added to the call timeout of SetTargetState,
	// which only answers after the arm delay.
	waitTimeout time.Duration
	// actor identifies the caller on write requests.
	actor string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithWaitTimeout extends the SetTargetState deadline by the expected arm delay.
func WithWaitTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.waitTimeout = timeout
		}
	}
}

// WithActor sets the identity sent with write requests.
func WithActor(actor string) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the security-system server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial security server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         pb.NewSecuritySystemServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetStatus retrieves and decodes the status snapshot.
func (c *Client) GetStatus(ctx context.Context) (domain.Status, error) {
	raw, err := c.GetRawStatus(ctx)
	if err != nil {
		return domain.Status{}, err
	}

	return grpcapi.FromProtoStatus(raw)
}

// GetRawStatus retrieves the status snapshot as sent on the wire.
func (c *Client) GetRawStatus(ctx context.Context) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx, 0)
	defer cancel()

	resp, err := c.api.GetStatus(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return resp, nil
}

// GetCurrentState retrieves the current state.
func (c *Client) GetCurrentState(ctx context.Context) (domain.CurrentState, error) {
	callCtx, cancel := c.callContext(ctx, 0)
	defer cancel()

	resp, err := c.api.GetCurrentState(callCtx, new(emptypb.Empty))
	if err != nil {
		return domain.CurrentOff, fmt.Errorf("get current state: %w", err)
	}

	return domain.ParseCurrentState(resp.GetValue())
}

// GetTargetState retrieves the target mode.
func (c *Client) GetTargetState(ctx context.Context) (domain.Mode, error) {
	callCtx, cancel := c.callContext(ctx, 0)
	defer cancel()

	resp, err := c.api.GetTargetState(callCtx, new(emptypb.Empty))
	if err != nil {
		return domain.ModeOff, fmt.Errorf("get target state: %w", err)
	}

	return domain.ParseMode(resp.GetValue())
}

// SetTargetState requests mode and returns the current state the server reports
// once the transition has been applied.
func (c *Client) SetTargetState(ctx context.Context, mode domain.Mode) (domain.CurrentState, error) {
	callCtx, cancel := c.callContext(ctx, c.waitTimeout)
	defer cancel()

	resp, err := c.api.SetTargetState(c.withActor(callCtx), wrapperspb.String(mode.String()))
	if err != nil {
		return domain.CurrentOff, fmt.Errorf("set target state: %w", err)
	}

	return domain.ParseCurrentState(resp.GetValue())
}

// GetSwitchOn retrieves the siren switch state.
func (c *Client) GetSwitchOn(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx, 0)
	defer cancel()

	resp, err := c.api.GetSwitchOn(callCtx, new(emptypb.Empty))
	if err != nil {
		return false, fmt.Errorf("get switch: %w", err)
	}

	return resp.GetValue(), nil
}

// SetSwitchOn writes the siren switch and returns the resulting value.
func (c *Client) SetSwitchOn(ctx context.Context, on bool) (bool, error) {
	callCtx, cancel := c.callContext(ctx, 0)
	defer cancel()

	resp, err := c.api.SetSwitchOn(c.withActor(callCtx), wrapperspb.Bool(on))
	if err != nil {
		return false, fmt.Errorf("set switch: %w", err)
	}

	return resp.GetValue(), nil
}

// callContext returns a context with the client's call timeout plus extra if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context, extra time.Duration) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout+extra)
}

func (c *Client) withActor(ctx context.Context) context.Context {
	if c.actor == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, pb.ActorMetadataKey, c.actor)
}
