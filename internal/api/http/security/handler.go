// Package security exposes the security-system properties over HTTP.
//
// Routes:
//
//	GET  /status
//	GET  /current
//	GET  /target
//	POST /target/{mode}
//	GET  /switch
//	POST /switch/{state}
package security

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	domain "github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/service/alarm"
)

// Service abstracts the controller operations the HTTP layer depends on.
type Service interface {
	Status() domain.Status
	SetTargetState(ctx context.Context, mode domain.Mode) error
	SetSwitchOn(ctx context.Context, on bool) error
}

// StatusResponse is the JSON body returned by every endpoint.
type StatusResponse struct {
	Name            string     `json:"name"`
	Current         string     `json:"current"`
	Target          string     `json:"target"`
	SwitchOn        bool       `json:"switch_on"`
	PendingTrigger  bool       `json:"pending_trigger"`
	PendingState    string     `json:"pending_state,omitempty"`
	PendingDeadline *time.Time `json:"pending_deadline,omitempty"`
}

// errorResponse is the JSON body of failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the HTTP API.
type Handler struct {
	// ctx carries the logger.
	ctx context.Context
	// service provides the state machine.
	service Service
	// router dispatches requests.
	router *mux.Router
}

// NewHandler builds the router for the given service.
func NewHandler(ctx context.Context, service Service) *Handler {
	h := &Handler{
		ctx:     logger.WithName(ctx, "http"),
		service: service,
		router:  mux.NewRouter(),
	}

	h.router.HandleFunc("/status", h.status).Methods(http.MethodGet)
	h.router.HandleFunc("/current", h.current).Methods(http.MethodGet)
	h.router.HandleFunc("/target", h.target).Methods(http.MethodGet)
	h.router.HandleFunc("/target/{mode}", h.setTarget).Methods(http.MethodPost, http.MethodPut)
	h.router.HandleFunc("/switch", h.switchState).Methods(http.MethodGet)
	h.router.HandleFunc("/switch/{state}", h.setSwitch).Methods(http.MethodPost, http.MethodPut)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, toResponse(h.service.Status()))
}

func (h *Handler) current(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"current": h.service.Status().Current.String()})
}

func (h *Handler) target(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"target": h.service.Status().Target.String()})
}

func (h *Handler) switchState(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"switch_on": h.service.Status().SwitchOn})
}

// setTarget answers after the arm delay, like the other surfaces.
func (h *Handler) setTarget(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	logger.InfoKV(h.ctx, "Target state requested", "mode", mode, "remote", r.RemoteAddr)

	if err = h.service.SetTargetState(r.Context(), mode); err != nil {
		h.writeJSON(w, statusCode(err), errorResponse{Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, toResponse(h.service.Status()))
}

func (h *Handler) setSwitch(w http.ResponseWriter, r *http.Request) {
	on, err := domain.ParseSwitch(mux.Vars(r)["state"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	logger.InfoKV(h.ctx, "Switch requested", "on", on, "remote", r.RemoteAddr)

	if err = h.service.SetSwitchOn(r.Context(), on); err != nil {
		h.writeJSON(w, statusCode(err), errorResponse{Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, toResponse(h.service.Status()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.ErrorKV(h.ctx, "Failed to write response", "error", err)
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, alarm.ErrTransitionCanceled):
		return http.StatusConflict
	case errors.Is(err, alarm.ErrInvalidMode), errors.Is(err, domain.ErrInvalidSwitch):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func toResponse(status domain.Status) StatusResponse {
	resp := StatusResponse{
		Name:           status.Name,
		Current:        status.Current.String(),
		Target:         status.Target.String(),
		SwitchOn:       status.SwitchOn,
		PendingTrigger: status.PendingTrigger,
	}

	if status.HasPending {
		deadline := status.PendingDeadline
		resp.PendingState = status.PendingState.String()
		resp.PendingDeadline = &deadline
	}

	return resp
}
