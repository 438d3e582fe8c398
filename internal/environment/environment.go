// Package environment holds the static, ranked registry of deployment environments.
package environment

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

// Environment is one deployment target with its own identity gateway.
type Environment struct {
	ID             id.EnvironmentID `yaml:"id"`
	Rank           int              `yaml:"rank"`
	ProductionLike bool             `yaml:"production_like"`
	// PromoteTo names the next environment in the promotion chain, if any.
	PromoteTo id.EnvironmentID `yaml:"promote_to,omitempty"`
	IDM       IDMCoordinates   `yaml:"idm"`
}

// IDMCoordinates locate the identity gateway for an environment.
type IDMCoordinates struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	ordered    []Environment
	byID       map[id.EnvironmentID]Environment
	production id.EnvironmentID
}

type fileFormat struct {
	Production   id.EnvironmentID `yaml:"production"`
	Environments []Environment    `yaml:"environments"`
}

// Defaults returns the standard three-environment chain: test, preprod, production.
func Defaults() []Environment {
	return []Environment{
		{ID: "test", Rank: 1},
		{ID: "preprod", Rank: 2, ProductionLike: true, PromoteTo: "production"},
		{ID: "production", Rank: 3, ProductionLike: true},
	}
}

// New validates envs and builds a registry. production names the canonical
// production environment; when empty the highest-ranked production-like
// environment is used.
func New(envs []Environment, production id.EnvironmentID) (*Registry, error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("environment registry: no environments")
	}

	r := &Registry{
		ordered: slices.Clone(envs),
		byID:    make(map[id.EnvironmentID]Environment, len(envs)),
	}
	slices.SortStableFunc(r.ordered, func(a, b Environment) int { return cmp.Compare(a.Rank, b.Rank) })

	for _, env := range r.ordered {
		if env.ID == "" {
			return nil, fmt.Errorf("environment registry: environment with empty id")
		}
		if _, dup := r.byID[env.ID]; dup {
			return nil, fmt.Errorf("environment registry: duplicate environment %q", env.ID)
		}
		r.byID[env.ID] = env
	}

	for _, env := range r.ordered {
		if env.PromoteTo == "" {
			continue
		}
		target, ok := r.byID[env.PromoteTo]
		if !ok {
			return nil, fmt.Errorf("environment registry: %q promotes to unknown environment %q", env.ID, env.PromoteTo)
		}
		if target.Rank <= env.Rank {
			return nil, fmt.Errorf("environment registry: %q must promote to a higher-ranked environment", env.ID)
		}
	}

	if production == "" {
		for _, env := range r.ordered {
			if env.ProductionLike {
				production = env.ID
			}
		}
	}
	prod, ok := r.byID[production]
	if !ok || !prod.ProductionLike {
		return nil, fmt.Errorf("environment registry: no production-like environment")
	}
	r.production = production

	return r, nil
}

// Load reads a YAML registry file.
//
//	production: production
//	environments:
//	  - id: test
//	    rank: 1
//	    idm: {base_url: "https://idm.test.internal"}
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read environments file: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse environments file: %w", err)
	}
	return New(f.Environments, f.Production)
}

// All returns every environment ordered by rank.
func (r *Registry) All() []Environment {
	return slices.Clone(r.ordered)
}

// ByID returns the environment or a not-found error.
func (r *Registry) ByID(envID id.EnvironmentID) (Environment, error) {
	env, ok := r.byID[envID]
	if !ok {
		return Environment{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("environment %q not found", envID))
	}
	return env, nil
}

// Production returns the canonical production-like environment.
func (r *Registry) Production() Environment {
	return r.byID[r.production]
}

// NonProduction returns the environments that reveal secrets, ordered by rank.
func (r *Registry) NonProduction() []Environment {
	var out []Environment
	for _, env := range r.ordered {
		if !env.ProductionLike {
			out = append(out, env)
		}
	}
	return out
}

// PromotionTarget returns the environment envID promotes to.
func (r *Registry) PromotionTarget(envID id.EnvironmentID) (Environment, bool) {
	env, ok := r.byID[envID]
	if !ok || env.PromoteTo == "" {
		return Environment{}, false
	}
	target, ok := r.byID[env.PromoteTo]
	return target, ok
}
