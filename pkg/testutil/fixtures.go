package testutil

import (
	"time"

	"github.com/google/uuid"

	armodels "devportal/internal/accessrequest/models"
	appmodels "devportal/internal/application/models"
	id "devportal/pkg/domain"
)

// ApplicationBuilder builds unsaved applications directly, bypassing the service layer.
type ApplicationBuilder struct {
	app appmodels.Application
}

func NewApplication() *ApplicationBuilder {
	now := time.Now()
	return &ApplicationBuilder{app: appmodels.Application{
		ID:          id.NewApplicationID(),
		Name:        "payments",
		CreatedAt:   now,
		LastUpdated: now,
	}}
}

// WithCredential appends a visible credential.
func (b *ApplicationBuilder) WithCredential(env id.EnvironmentID, clientID id.ClientID) *ApplicationBuilder {
	b.app.Credentials = append(b.app.Credentials,
		appmodels.NewCredential(env, clientID, "secret-"+clientID.String(), b.app.CreatedAt))
	return b
}

func (b *ApplicationBuilder) Build() appmodels.Application {
	return b.app
}

// AccessRequestBuilder defaults to a pending production request for one GET endpoint.
type AccessRequestBuilder struct {
	ar armodels.AccessRequest
}

func NewAccessRequest(appID id.ApplicationID) *AccessRequestBuilder {
	return &AccessRequestBuilder{ar: armodels.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: appID,
		ApiID:         id.ApiID(uuid.New()),
		ApiName:       "orders",
		EnvironmentID: "production",
		Status:        armodels.StatusPending,
		Endpoints:     []appmodels.Endpoint{{Method: "GET", Path: "/orders", Scopes: []string{"read:orders"}}},
		RequestedBy:   "dev@example.com",
		RequestedAt:   time.Now(),
	}}
}

func (b *AccessRequestBuilder) ForApi(apiID id.ApiID) *AccessRequestBuilder {
	b.ar.ApiID = apiID
	return b
}

func (b *AccessRequestBuilder) RequestedAt(at time.Time) *AccessRequestBuilder {
	b.ar.RequestedAt = at
	return b
}

func (b *AccessRequestBuilder) Build() armodels.AccessRequest {
	return b.ar
}
