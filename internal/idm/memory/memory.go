// Package memory is an in-process IDM used for local runs and tests. It keeps
// one client table per environment and can be told to fail specific calls.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/ksuid"

	"devportal/internal/idm"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/platform/strings"
	"devportal/pkg/secrets"
)

// Operation names used for call counting and failure injection.
const (
	OpCreateClient = "CreateClient"
	OpRotateSecret = "RotateSecret"
	OpDeleteClient = "DeleteClient"
	OpAddScope     = "AddScope"
	OpRemoveScope  = "RemoveScope"
	OpListScopes   = "ListScopes"
	OpFetchClient  = "FetchClient"
)

type client struct {
	desc   idm.ClientDescriptor
	secret string
	scopes map[string]struct{}
}

type key struct {
	env      id.EnvironmentID
	clientID id.ClientID
}

// FailFunc decides whether a call should fail. Returning nil lets it through.
type FailFunc func(op string, env id.EnvironmentID, clientID id.ClientID) error

type Gateway struct {
	mu      sync.Mutex
	clients map[key]*client
	calls   map[string]int
	fail    FailFunc
}

func New() *Gateway {
	return &Gateway{
		clients: make(map[key]*client),
		calls:   make(map[string]int),
	}
}

// FailWith installs fn as the failure hook. Pass nil to clear it.
func (g *Gateway) FailWith(fn FailFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = fn
}

// FailOn makes every call to op fail with err.
func (g *Gateway) FailOn(op string, err error) {
	g.FailWith(func(got string, _ id.EnvironmentID, _ id.ClientID) error {
		if got == op {
			return err
		}
		return nil
	})
}

// Calls returns how many times op was invoked, failed calls included.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *Gateway) ResetCalls() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = make(map[string]int)
}

// Scopes returns the sorted scope set of a client, for assertions.
func (g *Gateway) Scopes(env id.EnvironmentID, clientID id.ClientID) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.clients[key{env, clientID}]
	if !ok {
		return nil
	}
	return strings.SortedKeys(c.scopes)
}

// Exists reports whether the client is registered.
func (g *Gateway) Exists(env id.EnvironmentID, clientID id.ClientID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.clients[key{env, clientID}]
	return ok
}

// Remove deletes a client out-of-band, as an operator would in the IDM console.
func (g *Gateway) Remove(env id.EnvironmentID, clientID id.ClientID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, key{env, clientID})
}

// enter records the call and evaluates the failure hook. Callers hold mu.
func (g *Gateway) enter(op string, env id.EnvironmentID, clientID id.ClientID) error {
	g.calls[op]++
	if g.fail != nil {
		if err := g.fail(op, env, clientID); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) lookup(env id.EnvironmentID, clientID id.ClientID) (*client, error) {
	c, ok := g.clients[key{env, clientID}]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", env, clientID, idm.ErrClientNotFound)
	}
	return c, nil
}

func (g *Gateway) CreateClient(_ context.Context, env id.EnvironmentID, desc idm.ClientDescriptor) (idm.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpCreateClient, env, ""); err != nil {
		return idm.Client{}, err
	}
	secret, err := secrets.Generate()
	if err != nil {
		return idm.Client{}, fmt.Errorf("generate secret: %w", sentinel.ErrUnavailable)
	}
	clientID := id.ClientID(ksuid.New().String())
	g.clients[key{env, clientID}] = &client{desc: desc, secret: secret, scopes: map[string]struct{}{}}
	return idm.Client{ClientID: clientID, Secret: secret}, nil
}

func (g *Gateway) RotateSecret(_ context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpRotateSecret, env, clientID); err != nil {
		return "", err
	}
	c, err := g.lookup(env, clientID)
	if err != nil {
		return "", err
	}
	secret, err := secrets.Generate()
	if err != nil {
		return "", fmt.Errorf("generate secret: %w", sentinel.ErrUnavailable)
	}
	c.secret = secret
	return secret, nil
}

func (g *Gateway) DeleteClient(_ context.Context, env id.EnvironmentID, clientID id.ClientID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpDeleteClient, env, clientID); err != nil {
		return err
	}
	if _, err := g.lookup(env, clientID); err != nil {
		return err
	}
	delete(g.clients, key{env, clientID})
	return nil
}

func (g *Gateway) AddScope(_ context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpAddScope, env, clientID); err != nil {
		return err
	}
	c, err := g.lookup(env, clientID)
	if err != nil {
		return err
	}
	c.scopes[scope] = struct{}{}
	return nil
}

func (g *Gateway) RemoveScope(_ context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpRemoveScope, env, clientID); err != nil {
		return err
	}
	c, err := g.lookup(env, clientID)
	if err != nil {
		return err
	}
	delete(c.scopes, scope)
	return nil
}

func (g *Gateway) ListScopes(_ context.Context, env id.EnvironmentID, clientID id.ClientID) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpListScopes, env, clientID); err != nil {
		return nil, err
	}
	c, err := g.lookup(env, clientID)
	if err != nil {
		return nil, err
	}
	return strings.SortedKeys(c.scopes), nil
}

func (g *Gateway) FetchClient(_ context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpFetchClient, env, clientID); err != nil {
		return "", err
	}
	c, err := g.lookup(env, clientID)
	if err != nil {
		return "", err
	}
	return c.secret, nil
}

var _ idm.Gateway = (*Gateway)(nil)
