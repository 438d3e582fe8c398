package handler

import (
	"time"

	"devportal/internal/accessrequest/models"
	appmodels "devportal/internal/application/models"
)

type AccessRequestResponse struct {
	ID                    string               `json:"id"`
	ApplicationID         string               `json:"application_id"`
	ApiID                 string               `json:"api_id"`
	ApiName               string               `json:"api_name"`
	Environment           string               `json:"environment"`
	Status                models.Status        `json:"status"`
	Endpoints             []appmodels.Endpoint `json:"endpoints"`
	SupportingInformation string               `json:"supporting_information,omitempty"`
	RequestedBy           string               `json:"requested_by"`
	RequestedAt           time.Time            `json:"requested_at"`
	Decision              *models.Decision     `json:"decision,omitempty"`
	Cancellation          *models.Cancellation `json:"cancellation,omitempty"`
}

func toResponse(ar models.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:                    ar.ID.String(),
		ApplicationID:         ar.ApplicationID.String(),
		ApiID:                 ar.ApiID.String(),
		ApiName:               ar.ApiName,
		Environment:           ar.EnvironmentID.String(),
		Status:                ar.Status,
		Endpoints:             ar.Endpoints,
		SupportingInformation: ar.SupportingInformation,
		RequestedBy:           ar.RequestedBy,
		RequestedAt:           ar.RequestedAt,
		Decision:              ar.Decision,
		Cancellation:          ar.Cancellation,
	}
}

func toResponses(ars []models.AccessRequest) []AccessRequestResponse {
	out := make([]AccessRequestResponse, 0, len(ars))
	for _, ar := range ars {
		out = append(out, toResponse(ar))
	}
	return out
}
