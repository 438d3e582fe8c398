package handler

import (
	"strings"

	"github.com/google/uuid"

	"devportal/internal/application/models"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

const maxEndpointsPerApi = 100

type RegisterRequest struct {
	Name   string `json:"name"`
	TeamID string `json:"team_id,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.TeamID = strings.TrimSpace(r.TeamID)
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.TeamID != "" {
		if _, err := id.ParseTeamID(r.TeamID); err != nil {
			return err
		}
	}
	return nil
}

// Team returns the parsed team, or nil for an application without one.
func (r *RegisterRequest) Team() *id.TeamID {
	if r.TeamID == "" {
		return nil
	}
	teamID, err := id.ParseTeamID(r.TeamID)
	if err != nil {
		return nil
	}
	return &teamID
}

type ChangeTeamRequest struct {
	TeamID string `json:"team_id"`
}

func (r *ChangeTeamRequest) Validate() error {
	_, err := id.ParseTeamID(r.TeamID)
	return err
}

type EndpointRequest struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Scopes []string `json:"scopes"`
}

func toEndpoints(in []EndpointRequest) []models.Endpoint {
	out := make([]models.Endpoint, len(in))
	for i, ep := range in {
		out[i] = models.Endpoint{Method: strings.ToUpper(ep.Method), Path: ep.Path, Scopes: ep.Scopes}
	}
	return out
}

func validateEndpoints(endpoints []EndpointRequest) error {
	if len(endpoints) > maxEndpointsPerApi {
		return dErrors.New(dErrors.CodeValidation, "too many endpoints")
	}
	for _, ep := range endpoints {
		if ep.Method == "" || ep.Path == "" {
			return dErrors.New(dErrors.CodeValidation, "endpoint method and path are required")
		}
	}
	return nil
}

type AddApiRequest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Endpoints []EndpointRequest `json:"endpoints"`
}

func (r *AddApiRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *AddApiRequest) Validate() error {
	if _, err := id.ParseApiID(r.ID); err != nil {
		return err
	}
	return validateEndpoints(r.Endpoints)
}

func (r *AddApiRequest) ToApi() models.Api {
	return models.Api{
		ID:        id.ApiID(uuid.MustParse(r.ID)),
		Name:      r.Name,
		Endpoints: toEndpoints(r.Endpoints),
	}
}
