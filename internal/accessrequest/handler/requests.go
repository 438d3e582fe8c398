package handler

import (
	"strings"

	"github.com/google/uuid"

	"devportal/internal/accessrequest/service"
	appmodels "devportal/internal/application/models"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

const maxApisPerSubmission = 20

type EndpointRequest struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Scopes []string `json:"scopes"`
}

type ApiRequest struct {
	ApiID     string            `json:"api_id"`
	ApiName   string            `json:"api_name"`
	Endpoints []EndpointRequest `json:"endpoints"`
}

type SubmitRequest struct {
	Environment           string       `json:"environment"`
	SupportingInformation string       `json:"supporting_information"`
	Apis                  []ApiRequest `json:"apis"`
}

func (r *SubmitRequest) Normalize() {
	r.Environment = strings.TrimSpace(r.Environment)
	r.SupportingInformation = strings.TrimSpace(r.SupportingInformation)
	for i := range r.Apis {
		r.Apis[i].ApiID = strings.TrimSpace(r.Apis[i].ApiID)
		r.Apis[i].ApiName = strings.TrimSpace(r.Apis[i].ApiName)
		for j := range r.Apis[i].Endpoints {
			r.Apis[i].Endpoints[j].Method = strings.ToUpper(strings.TrimSpace(r.Apis[i].Endpoints[j].Method))
		}
	}
}

func (r *SubmitRequest) Validate() error {
	if _, err := id.ParseEnvironmentID(r.Environment); err != nil {
		return err
	}
	if len(r.Apis) > maxApisPerSubmission {
		return dErrors.New(dErrors.CodeValidation, "too many apis in one submission")
	}
	for _, api := range r.Apis {
		if _, err := id.ParseApiID(api.ApiID); err != nil {
			return err
		}
		for _, ep := range api.Endpoints {
			if ep.Method == "" || ep.Path == "" {
				return dErrors.New(dErrors.CodeValidation, "endpoint method and path are required")
			}
		}
	}
	return nil
}

func (r *SubmitRequest) toCommand(appID id.ApplicationID, actor string) service.SubmitCommand {
	cmd := service.SubmitCommand{
		ApplicationID:         appID,
		EnvironmentID:         id.EnvironmentID(r.Environment),
		SupportingInformation: r.SupportingInformation,
		RequestedBy:           actor,
	}
	for _, api := range r.Apis {
		endpoints := make([]appmodels.Endpoint, len(api.Endpoints))
		for i, ep := range api.Endpoints {
			endpoints[i] = appmodels.Endpoint{Method: ep.Method, Path: ep.Path, Scopes: ep.Scopes}
		}
		cmd.Apis = append(cmd.Apis, service.ApiRequest{
			ApiID:     id.ApiID(uuid.MustParse(api.ApiID)),
			ApiName:   api.ApiName,
			Endpoints: endpoints,
		})
	}
	return cmd
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}
