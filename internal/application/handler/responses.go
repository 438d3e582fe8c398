package handler

import (
	"time"

	"devportal/internal/application/models"
	"devportal/internal/scopes"
)

type ApplicationResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	TeamID      string               `json:"team_id,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	LastUpdated time.Time            `json:"last_updated"`
	Credentials []CredentialResponse `json:"credentials"`
	Apis        []ApiResponse        `json:"apis"`
	Version     int64                `json:"version"`
}

type CredentialResponse struct {
	ClientID       string    `json:"client_id"`
	Environment    string    `json:"environment"`
	CreatedAt      time.Time `json:"created_at"`
	Secret         string    `json:"secret,omitempty"`
	SecretFragment string    `json:"secret_fragment,omitempty"`
	Hidden         bool      `json:"hidden"`
	// Warning is set when the credential was created but its scopes were not reconciled.
	Warning string `json:"warning,omitempty"`
}

type ApiResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Endpoints []models.Endpoint `json:"endpoints"`
}

type ScopeResult struct {
	Environment string              `json:"environment"`
	Changed     map[string][]string `json:"changed"`
	Total       int                 `json:"total"`
}

func toApplicationResponse(app models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID.String(),
		Name:        app.Name,
		CreatedAt:   app.CreatedAt,
		LastUpdated: app.LastUpdated,
		Credentials: toCredentialResponses(app.Credentials),
		Apis:        make([]ApiResponse, 0, len(app.Apis)),
		Version:     app.Version,
	}
	if app.TeamID != nil {
		resp.TeamID = app.TeamID.String()
	}
	for _, api := range app.Apis {
		resp.Apis = append(resp.Apis, ApiResponse{ID: api.ID.String(), Name: api.Name, Endpoints: api.Endpoints})
	}
	return resp
}

func toCredentialResponse(c models.Credential) CredentialResponse {
	return CredentialResponse{
		ClientID:       c.ClientID.String(),
		Environment:    c.EnvironmentID.String(),
		CreatedAt:      c.CreatedAt,
		Secret:         c.Secret,
		SecretFragment: c.SecretFragment,
		Hidden:         c.Hidden,
	}
}

func toCredentialResponses(creds []models.Credential) []CredentialResponse {
	out := make([]CredentialResponse, 0, len(creds))
	for _, c := range creds {
		out = append(out, toCredentialResponse(c))
	}
	return out
}

func toScopeResult(r scopes.Result) ScopeResult {
	changed := make(map[string][]string, len(r.Changed))
	for clientID, s := range r.Changed {
		changed[clientID.String()] = s
	}
	return ScopeResult{Environment: r.Environment.String(), Changed: changed, Total: r.Total()}
}
