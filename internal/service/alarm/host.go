package alarm

import (
	"context"

	"github.com/oshokin/security-system/internal/domain/security"
)

// Hosts fans property updates out to several surfaces.
type Hosts []Host

// UpdateCurrentState forwards the new current state to every host.
func (hs Hosts) UpdateCurrentState(ctx context.Context, state security.CurrentState) {
	for _, h := range hs {
		h.UpdateCurrentState(ctx, state)
	}
}

// UpdateTargetState forwards the new target mode to every host.
func (hs Hosts) UpdateTargetState(ctx context.Context, mode security.Mode) {
	for _, h := range hs {
		h.UpdateTargetState(ctx, mode)
	}
}

// UpdateSwitchOn forwards the new switch state to every host.
func (hs Hosts) UpdateSwitchOn(ctx context.Context, on bool) {
	for _, h := range hs {
		h.UpdateSwitchOn(ctx, on)
	}
}
