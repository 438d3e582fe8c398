// Package idm defines the boundary to the Identity Management system that owns
// OAuth clients and their scopes in every environment.
package idm

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks Gateway

import (
	"context"
	"errors"
	"fmt"

	id "devportal/pkg/domain"
)

// ErrClientNotFound is returned when the IDM has no client with the given id.
var ErrClientNotFound = errors.New("idm: client not found")

// ClientDescriptor describes a client to be created.
type ClientDescriptor struct {
	ApplicationID id.ApplicationID
	Name          string
	Description   string
}

// Client is a freshly created or rotated client. Secret is plaintext and
// returned exactly once by the IDM.
type Client struct {
	ClientID id.ClientID
	Secret   string
}

// Gateway is the IDM contract consumed by the credential and scope services.
// Implementations return ErrClientNotFound (optionally wrapped) when the
// client is unknown, and any other error for upstream failures.
type Gateway interface {
	CreateClient(ctx context.Context, env id.EnvironmentID, desc ClientDescriptor) (Client, error)
	RotateSecret(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error)
	DeleteClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) error
	AddScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error
	RemoveScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error
	ListScopes(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) ([]string, error)
	FetchClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error)
}

// ErrUnknownEnvironment is returned by Router for environments without a gateway.
var ErrUnknownEnvironment = errors.New("idm: no gateway for environment")

// Router dispatches each call to the gateway registered for its environment.
// Every environment has its own IDM deployment and credentials.
type Router struct {
	gateways map[id.EnvironmentID]Gateway
}

func NewRouter(gateways map[id.EnvironmentID]Gateway) *Router {
	copied := make(map[id.EnvironmentID]Gateway, len(gateways))
	for env, gw := range gateways {
		copied[env] = gw
	}
	return &Router{gateways: copied}
}

func (r *Router) route(env id.EnvironmentID) (Gateway, error) {
	gw, ok := r.gateways[env]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnvironment, env)
	}
	return gw, nil
}

func (r *Router) CreateClient(ctx context.Context, env id.EnvironmentID, desc ClientDescriptor) (Client, error) {
	gw, err := r.route(env)
	if err != nil {
		return Client{}, err
	}
	return gw.CreateClient(ctx, env, desc)
}

func (r *Router) RotateSecret(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	gw, err := r.route(env)
	if err != nil {
		return "", err
	}
	return gw.RotateSecret(ctx, env, clientID)
}

func (r *Router) DeleteClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) error {
	gw, err := r.route(env)
	if err != nil {
		return err
	}
	return gw.DeleteClient(ctx, env, clientID)
}

func (r *Router) AddScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	gw, err := r.route(env)
	if err != nil {
		return err
	}
	return gw.AddScope(ctx, env, clientID, scope)
}

func (r *Router) RemoveScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	gw, err := r.route(env)
	if err != nil {
		return err
	}
	return gw.RemoveScope(ctx, env, clientID, scope)
}

func (r *Router) ListScopes(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) ([]string, error) {
	gw, err := r.route(env)
	if err != nil {
		return nil, err
	}
	return gw.ListScopes(ctx, env, clientID)
}

func (r *Router) FetchClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	gw, err := r.route(env)
	if err != nil {
		return "", err
	}
	return gw.FetchClient(ctx, env, clientID)
}
