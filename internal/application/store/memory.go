package store

import (
	"context"
	"slices"
	"sync"

	"devportal/internal/application/models"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
)

// InMemory stores whole application documents keyed by ID.
type InMemory struct {
	mu   sync.RWMutex
	apps map[id.ApplicationID]models.Application
}

func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[id.ApplicationID]models.Application)}
}

// FindByID returns a copy of the stored document, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, appID id.ApplicationID) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[appID]
	if !ok {
		return models.Application{}, sentinel.ErrNotFound
	}
	return deepCopy(app), nil
}

// Insert stores a new document at version 1.
func (s *InMemory) Insert(_ context.Context, app models.Application) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return models.Application{}, sentinel.ErrConflict
	}
	app.Version = 1
	s.apps[app.ID] = deepCopy(app)
	return app, nil
}

// Update replaces the document when app.Version matches the stored version,
// and returns it with the version bumped. A mismatch is sentinel.ErrConflict.
func (s *InMemory) Update(_ context.Context, app models.Application) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.apps[app.ID]
	if !ok {
		return models.Application{}, sentinel.ErrNotFound
	}
	if stored.Version != app.Version {
		return models.Application{}, sentinel.ErrConflict
	}
	app.Version++
	s.apps[app.ID] = deepCopy(app)
	return app, nil
}

func (s *InMemory) Delete(_ context.Context, appID id.ApplicationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[appID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.apps, appID)
	return nil
}

func deepCopy(app models.Application) models.Application {
	app.Credentials = slices.Clone(app.Credentials)
	if app.Apis != nil {
		app.Apis = copyApis(app.Apis)
	}
	if app.TeamID != nil {
		team := *app.TeamID
		app.TeamID = &team
	}
	if app.Deleted != nil {
		d := *app.Deleted
		app.Deleted = &d
	}
	return app
}

func copyApis(in []models.Api) []models.Api {
	apis := make([]models.Api, len(in))
	for i, api := range in {
		endpoints := make([]models.Endpoint, len(api.Endpoints))
		for j, ep := range api.Endpoints {
			ep.Scopes = slices.Clone(ep.Scopes)
			endpoints[j] = ep
		}
		api.Endpoints = endpoints
		apis[i] = api
	}
	return apis
}

// TeamDirectory is a static in-memory team lookup.
type TeamDirectory struct {
	mu    sync.RWMutex
	teams map[id.TeamID]models.Team
}

func NewTeamDirectory(teams ...models.Team) *TeamDirectory {
	d := &TeamDirectory{teams: make(map[id.TeamID]models.Team, len(teams))}
	for _, t := range teams {
		d.teams[t.ID] = t
	}
	return d
}

func (d *TeamDirectory) Add(team models.Team) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.teams[team.ID] = team
}

func (d *TeamDirectory) FindByID(_ context.Context, teamID id.TeamID) (models.Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	team, ok := d.teams[teamID]
	if !ok {
		return models.Team{}, sentinel.ErrNotFound
	}
	return team, nil
}
