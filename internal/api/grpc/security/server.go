package security

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	pb "github.com/oshokin/security-system/internal/pb/v1"
	"github.com/oshokin/security-system/internal/service/alarm"
)

// Service abstracts the controller operations the transport layer depends on.
type Service interface {
	Status() domain.Status
	CurrentState() domain.CurrentState
	TargetState() domain.Mode
	SetTargetState(ctx context.Context, mode domain.Mode) error
	SwitchOn() bool
	SetSwitchOn(ctx context.Context, on bool) error
}

// Server implements the SecuritySystemService gRPC API.
type Server struct {
	pb.UnimplementedSecuritySystemServiceServer

	// service provides the security-system state machine.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetStatus returns a snapshot of every property.
func (s *Server) GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return ToProtoStatus(s.service.Status()), nil
}

// GetCurrentState returns the current state name.
func (s *Server) GetCurrentState(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.service.CurrentState().String()), nil
}

// GetTargetState returns the target mode name.
func (s *Server) GetTargetState(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.service.TargetState().String()), nil
}

// SetTargetState requests a mode and answers once the current state has followed.
func (s *Server) SetTargetState(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	mode, err := domain.ParseMode(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logger.InfoKV(ctx, "Target state requested", "mode", mode, "actor", actorFromContext(ctx))

	if err = s.service.SetTargetState(ctx, mode); err != nil {
		return nil, toStatusError(ctx, err)
	}

	return wrapperspb.String(s.service.CurrentState().String()), nil
}

// GetSwitchOn returns the siren switch state.
func (s *Server) GetSwitchOn(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.service.SwitchOn()), nil
}

// SetSwitchOn sets the siren switch and returns its resulting state,
// which is false when the write silenced a sounding alarm.
func (s *Server) SetSwitchOn(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	logger.InfoKV(ctx, "Switch requested", "on", req.GetValue(), "actor", actorFromContext(ctx))

	if err := s.service.SetSwitchOn(ctx, req.GetValue()); err != nil {
		return nil, toStatusError(ctx, err)
	}

	return wrapperspb.Bool(s.service.SwitchOn()), nil
}

// toStatusError maps controller errors to gRPC status codes.
func toStatusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, alarm.ErrTransitionCanceled):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, alarm.ErrInvalidMode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		logger.ErrorKV(ctx, "Request failed", "error", err)

		return status.Error(codes.Internal, "request failed")
	}
}

// actorFromContext returns the caller identity sent by securityctl, if any.
func actorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "unknown"
	}

	if values := md.Get(pb.ActorMetadataKey); len(values) > 0 && values[0] != "" {
		return values[0]
	}

	return "unknown"
}
