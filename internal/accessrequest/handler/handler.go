// Package handler exposes access request submission and decisions over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devportal/internal/accessrequest/models"
	"devportal/internal/accessrequest/service"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/httputil"
	"devportal/pkg/requestcontext"
)

type Service interface {
	Submit(ctx context.Context, cmd service.SubmitCommand) ([]models.AccessRequest, error)
	Get(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error)
	List(ctx context.Context, filter models.Filter) ([]models.AccessRequest, error)
	Approve(ctx context.Context, arID id.AccessRequestID, by string) (models.AccessRequest, error)
	Reject(ctx context.Context, arID id.AccessRequestID, by, reason string) (models.AccessRequest, error)
	Cancel(ctx context.Context, arID id.AccessRequestID, by string) (models.AccessRequest, error)
}

type Handler struct {
	requests Service
	logger   *slog.Logger
}

func New(requests Service, logger *slog.Logger) *Handler {
	return &Handler{requests: requests, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/applications/{appID}/access-requests", h.handleSubmit)
	r.Get("/access-requests", h.handleList)
	r.Route("/access-requests/{arID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/approve", h.handleApprove)
		r.Post("/reject", h.handleReject)
		r.Post("/cancel", h.handleCancel)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor := requestcontext.Actor(r.Context())
	if actor == "" {
		h.logger.ErrorContext(r.Context(), "actor missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}
	return actor, true
}

func (h *Handler) arID(w http.ResponseWriter, r *http.Request) (id.AccessRequestID, bool) {
	arID, err := id.ParseAccessRequestID(chi.URLParam(r, "arID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.AccessRequestID{}, false
	}
	return arID, true
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, err := id.ParseApplicationID(chi.URLParam(r, "appID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger)
	if !ok {
		return
	}
	batch, err := h.requests.Submit(r.Context(), req.toCommand(appID, actor))
	if err != nil {
		h.fail(w, r, "failed to submit access requests", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponses(batch))
}

// handleList accepts optional application_id and status query parameters.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var filter models.Filter
	q := r.URL.Query()
	if raw := q.Get("application_id"); raw != "" {
		appID, err := id.ParseApplicationID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.ApplicationID = &appID
	}
	if raw := q.Get("status"); raw != "" {
		status := models.Status(raw)
		if !status.IsValid() {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown status "+raw))
			return
		}
		filter.Status = &status
	}
	ars, err := h.requests.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "failed to list access requests", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponses(ars))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	arID, ok := h.arID(w, r)
	if !ok {
		return
	}
	ar, err := h.requests.Get(r.Context(), arID)
	if err != nil {
		h.fail(w, r, "failed to get access request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ar))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	arID, ok := h.arID(w, r)
	if !ok {
		return
	}
	ar, err := h.requests.Approve(r.Context(), arID, actor)
	if err != nil {
		h.fail(w, r, "failed to approve access request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ar))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	arID, ok := h.arID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger)
	if !ok {
		return
	}
	ar, err := h.requests.Reject(r.Context(), arID, actor, req.Reason)
	if err != nil {
		h.fail(w, r, "failed to reject access request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ar))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	arID, ok := h.arID(w, r)
	if !ok {
		return
	}
	ar, err := h.requests.Cancel(r.Context(), arID, actor)
	if err != nil {
		h.fail(w, r, "failed to cancel access request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ar))
}
