package models

import (
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/strings"
)

// Api references an external catalog entry and the endpoints the application uses.
type Api struct {
	ID        id.ApiID   `json:"id"`
	Name      string     `json:"name"`
	Endpoints []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Scopes []string `json:"scopes"`
}

// NormalizeEndpoints trims and deduplicates scope names in place on a copy.
func NormalizeEndpoints(endpoints []Endpoint) []Endpoint {
	out := make([]Endpoint, len(endpoints))
	for i, ep := range endpoints {
		out[i] = Endpoint{Method: ep.Method, Path: ep.Path, Scopes: strings.DedupeAndTrim(ep.Scopes)}
	}
	return out
}

func (a Api) Validate() error {
	if a.ID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "api id is required")
	}
	if a.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "api name is required")
	}
	return nil
}
