package security

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/security-system/internal/domain/security"
)

// Status field names used in the GetStatus struct.
const (
	FieldName            = "name"
	FieldCurrent         = "current"
	FieldTarget          = "target"
	FieldSwitchOn        = "switch_on"
	FieldPendingTrigger  = "pending_trigger"
	FieldPendingState    = "pending_state"
	FieldPendingDeadline = "pending_deadline"
)

// errMalformedStatus is returned when a status struct lacks required fields.
var errMalformedStatus = errors.New("malformed status")

// ToProtoStatus converts a domain status snapshot into a protobuf Struct.
// Pending fields are present only while a transition is scheduled.
func ToProtoStatus(status domain.Status) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldName:           structpb.NewStringValue(status.Name),
		FieldCurrent:        structpb.NewStringValue(status.Current.String()),
		FieldTarget:         structpb.NewStringValue(status.Target.String()),
		FieldSwitchOn:       structpb.NewBoolValue(status.SwitchOn),
		FieldPendingTrigger: structpb.NewBoolValue(status.PendingTrigger),
	}

	if status.HasPending {
		fields[FieldPendingState] = structpb.NewStringValue(status.PendingState.String())
		fields[FieldPendingDeadline] = structpb.NewStringValue(status.PendingDeadline.UTC().Format(time.RFC3339Nano))
	}

	return &structpb.Struct{Fields: fields}
}

// FromProtoStatus converts a GetStatus response back into a domain status.
func FromProtoStatus(s *structpb.Struct) (domain.Status, error) {
	var status domain.Status

	fields := s.GetFields()
	if fields == nil {
		return status, errMalformedStatus
	}

	current, err := domain.ParseCurrentState(fields[FieldCurrent].GetStringValue())
	if err != nil {
		return status, fmt.Errorf("%w: current: %w", errMalformedStatus, err)
	}

	target, err := domain.ParseMode(fields[FieldTarget].GetStringValue())
	if err != nil {
		return status, fmt.Errorf("%w: target: %w", errMalformedStatus, err)
	}

	status.Name = fields[FieldName].GetStringValue()
	status.Current = current
	status.Target = target
	status.SwitchOn = fields[FieldSwitchOn].GetBoolValue()
	status.PendingTrigger = fields[FieldPendingTrigger].GetBoolValue()

	if pending, ok := fields[FieldPendingState]; ok {
		status.HasPending = true

		if status.PendingState, err = domain.ParseCurrentState(pending.GetStringValue()); err != nil {
			return status, fmt.Errorf("%w: pending state: %w", errMalformedStatus, err)
		}

		if deadline := fields[FieldPendingDeadline].GetStringValue(); deadline != "" {
			if status.PendingDeadline, err = time.Parse(time.RFC3339Nano, deadline); err != nil {
				return status, fmt.Errorf("%w: pending deadline: %w", errMalformedStatus, err)
			}
		}
	}

	return status, nil
}
