// Package handler exposes applications, their credentials and scope maintenance over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks ApplicationService,CredentialService

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devportal/internal/application/models"
	"devportal/internal/application/service"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/httputil"
	"devportal/pkg/requestcontext"
)

type ApplicationService interface {
	Register(ctx context.Context, cmd service.RegisterCommand) (models.Application, error)
	Get(ctx context.Context, appID id.ApplicationID) (models.Application, error)
	ChangeTeam(ctx context.Context, appID id.ApplicationID, teamID id.TeamID, actor string) (models.Application, error)
	RemoveTeam(ctx context.Context, appID id.ApplicationID, actor string) (models.Application, error)
	AddApi(ctx context.Context, appID id.ApplicationID, api models.Api, actor string) (models.Application, error)
	RemoveApi(ctx context.Context, appID id.ApplicationID, apiID id.ApiID, actor string) (models.Application, error)
	Delete(ctx context.Context, appID id.ApplicationID, actor string) error
	FixScopes(ctx context.Context, appID id.ApplicationID, actor string) ([]scopes.Result, error)
	MinimiseScopes(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, actor string) (scopes.Result, error)
}

type CredentialService interface {
	ListCredentials(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID) ([]models.Credential, error)
	AddCredential(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, actor string) (models.Credential, error)
	DeleteCredential(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, clientID id.ClientID, actor string) error
}

type Handler struct {
	apps   ApplicationService
	creds  CredentialService
	logger *slog.Logger
}

func New(apps ApplicationService, creds CredentialService, logger *slog.Logger) *Handler {
	return &Handler{apps: apps, creds: creds, logger: logger}
}

// Register mounts the application routes. Callers are expected to sit behind auth.RequireActor.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.handleRegister)
	r.Route("/applications/{appID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleDelete)
		r.Put("/team", h.handleChangeTeam)
		r.Delete("/team", h.handleRemoveTeam)
		r.Post("/apis", h.handleAddApi)
		r.Delete("/apis/{apiID}", h.handleRemoveApi)
		r.Post("/scopes/fix", h.handleFixScopes)
		r.Route("/environments/{env}", func(r chi.Router) {
			r.Post("/scopes/minimise", h.handleMinimiseScopes)
			r.Get("/credentials", h.handleListCredentials)
			r.Post("/credentials", h.handleAddCredential)
			r.Delete("/credentials/{clientID}", h.handleDeleteCredential)
		})
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	level := slog.LevelWarn
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) || domainErr.Code == dErrors.CodeUpstream || domainErr.Code == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteError(w, err)
}

// actor returns the authenticated caller. A missing actor means the route was
// mounted without auth middleware.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor := requestcontext.Actor(r.Context())
	if actor == "" {
		h.fail(w, r, "actor missing from context despite auth middleware",
			dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}
	return actor, true
}

func (h *Handler) appID(w http.ResponseWriter, r *http.Request) (id.ApplicationID, bool) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "appID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ApplicationID{}, false
	}
	return appID, true
}

func (h *Handler) envID(w http.ResponseWriter, r *http.Request) (id.EnvironmentID, bool) {
	envID, err := id.ParseEnvironmentID(chi.URLParam(r, "env"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return envID, true
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger)
	if !ok {
		return
	}
	app, err := h.apps.Register(r.Context(), service.RegisterCommand{Name: req.Name, TeamID: req.Team(), CreatedBy: actor})
	if err != nil {
		h.fail(w, r, "failed to register application", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toApplicationResponse(app))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	app, err := h.apps.Get(r.Context(), appID)
	if err != nil {
		h.fail(w, r, "failed to get application", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	if err := h.apps.Delete(r.Context(), appID, actor); err != nil {
		h.fail(w, r, "failed to delete application", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleChangeTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ChangeTeamRequest](w, r, h.logger)
	if !ok {
		return
	}
	teamID, _ := id.ParseTeamID(req.TeamID)
	app, err := h.apps.ChangeTeam(r.Context(), appID, teamID, actor)
	if err != nil {
		h.fail(w, r, "failed to change team", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	app, err := h.apps.RemoveTeam(r.Context(), appID, actor)
	if err != nil {
		h.fail(w, r, "failed to remove team", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleAddApi(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddApiRequest](w, r, h.logger)
	if !ok {
		return
	}
	app, err := h.apps.AddApi(r.Context(), appID, req.ToApi(), actor)
	if err != nil {
		h.fail(w, r, "failed to add api", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleRemoveApi(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	apiID, err := id.ParseApiID(chi.URLParam(r, "apiID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, err := h.apps.RemoveApi(r.Context(), appID, apiID, actor)
	if err != nil {
		h.fail(w, r, "failed to remove api", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) handleFixScopes(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	results, err := h.apps.FixScopes(r.Context(), appID, actor)
	if err != nil {
		h.fail(w, r, "failed to fix scopes", err)
		return
	}
	out := make([]ScopeResult, 0, len(results))
	for _, res := range results {
		out = append(out, toScopeResult(res))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMinimiseScopes(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	envID, ok := h.envID(w, r)
	if !ok {
		return
	}
	result, err := h.apps.MinimiseScopes(r.Context(), appID, envID, actor)
	if err != nil {
		h.fail(w, r, "failed to minimise scopes", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toScopeResult(result))
}

func (h *Handler) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	envID, ok := h.envID(w, r)
	if !ok {
		return
	}
	creds, err := h.creds.ListCredentials(r.Context(), appID, envID)
	if err != nil {
		h.fail(w, r, "failed to list credentials", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCredentialResponses(creds))
}

func (h *Handler) handleAddCredential(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	envID, ok := h.envID(w, r)
	if !ok {
		return
	}
	cred, err := h.creds.AddCredential(r.Context(), appID, envID, actor)
	if err != nil && cred.ClientID == "" {
		h.fail(w, r, "failed to add credential", err)
		return
	}
	resp := toCredentialResponse(cred)
	if err != nil {
		// The credential is persisted; its secret is only ever shown in this response.
		h.logger.ErrorContext(r.Context(), "credential added but scopes not reconciled",
			"error", err,
			"application_id", appID,
			"client_id", cred.ClientID,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		resp.Warning = "scopes not reconciled; retry with POST /applications/" + appID.String() + "/scopes/fix"
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	appID, ok := h.appID(w, r)
	if !ok {
		return
	}
	envID, ok := h.envID(w, r)
	if !ok {
		return
	}
	clientID, err := id.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.creds.DeleteCredential(r.Context(), appID, envID, clientID, actor); err != nil {
		h.fail(w, r, "failed to delete credential", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
