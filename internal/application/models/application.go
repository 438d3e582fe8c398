package models

import (
	"slices"
	"time"

	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

// MaxCredentialsPerEnvironment is the live credential ceiling per application and environment.
const MaxCredentialsPerEnvironment = 5

// Application is the aggregate root. It is treated as an immutable value:
// every With* method returns a modified copy and leaves the receiver intact.
type Application struct {
	ID          id.ApplicationID `json:"id"`
	Name        string           `json:"name"`
	TeamID      *id.TeamID       `json:"team_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	LastUpdated time.Time        `json:"last_updated"`
	Deleted     *Deletion        `json:"deleted,omitempty"`
	Credentials []Credential     `json:"credentials"`
	Apis        []Api            `json:"apis"`
	// Version is the optimistic concurrency token; stores reject updates
	// whose Version does not match the stored document.
	Version int64 `json:"version"`
}

type Deletion struct {
	At time.Time `json:"at"`
	By string    `json:"by"`
}

// NewApplication builds an application with its initially provisioned credentials.
func NewApplication(appID id.ApplicationID, name string, teamID *id.TeamID, credentials []Credential, now time.Time) (Application, error) {
	if name == "" {
		return Application{}, dErrors.New(dErrors.CodeValidation, "application name cannot be empty")
	}
	if len(name) > 128 {
		return Application{}, dErrors.New(dErrors.CodeValidation, "application name must be 128 characters or less")
	}
	return Application{
		ID:          appID,
		Name:        name,
		TeamID:      teamID,
		CreatedAt:   now,
		LastUpdated: now,
		Credentials: slices.Clone(credentials),
	}, nil
}

func (a Application) IsDeleted() bool {
	return a.Deleted != nil
}

// CredentialsIn returns the credentials owned by env, oldest first.
func (a Application) CredentialsIn(env id.EnvironmentID) []Credential {
	var out []Credential
	for _, c := range a.Credentials {
		if c.EnvironmentID == env {
			out = append(out, c)
		}
	}
	return out
}

func (a Application) CredentialCount(env id.EnvironmentID) int {
	n := 0
	for _, c := range a.Credentials {
		if c.EnvironmentID == env {
			n++
		}
	}
	return n
}

// IsActiveIn reports whether the application holds at least one credential in env.
func (a Application) IsActiveIn(env id.EnvironmentID) bool {
	return a.CredentialCount(env) > 0
}

// PrimaryCredential is the first credential provisioned in env.
func (a Application) PrimaryCredential(env id.EnvironmentID) (Credential, bool) {
	for _, c := range a.Credentials {
		if c.EnvironmentID == env {
			return c, true
		}
	}
	return Credential{}, false
}

func (a Application) FindCredential(env id.EnvironmentID, clientID id.ClientID) (Credential, bool) {
	for _, c := range a.Credentials {
		if c.EnvironmentID == env && c.ClientID == clientID {
			return c, true
		}
	}
	return Credential{}, false
}

// CanAddCredential enforces the per-environment ceiling.
func (a Application) CanAddCredential(env id.EnvironmentID) error {
	if a.CredentialCount(env) >= MaxCredentialsPerEnvironment {
		return dErrors.New(dErrors.CodeCredentialLimitExceeded, "credential limit reached for environment "+env.String())
	}
	return nil
}

// CanRemoveCredential rejects unknown credentials and the last credential in env.
func (a Application) CanRemoveCredential(env id.EnvironmentID, clientID id.ClientID) error {
	if _, ok := a.FindCredential(env, clientID); !ok {
		return dErrors.New(dErrors.CodeCredentialNotFound, "credential not found")
	}
	if a.CredentialCount(env) <= 1 {
		return dErrors.New(dErrors.CodeCredentialLimitExceeded, "cannot remove last credential")
	}
	return nil
}

func (a Application) clone(now time.Time) Application {
	next := a
	next.Credentials = slices.Clone(a.Credentials)
	next.Apis = slices.Clone(a.Apis)
	next.LastUpdated = now
	return next
}

// WithCredential appends c. Stored copies never carry a secret for production-like environments;
// callers pass the persisted form.
func (a Application) WithCredential(c Credential, now time.Time) Application {
	next := a.clone(now)
	next.Credentials = append(next.Credentials, c)
	return next
}

// WithCredentialReplaced swaps the credential sharing c's environment and client ID.
func (a Application) WithCredentialReplaced(c Credential, now time.Time) Application {
	next := a.clone(now)
	for i, existing := range next.Credentials {
		if existing.EnvironmentID == c.EnvironmentID && existing.ClientID == c.ClientID {
			next.Credentials[i] = c
		}
	}
	return next
}

func (a Application) WithoutCredential(env id.EnvironmentID, clientID id.ClientID, now time.Time) Application {
	next := a.clone(now)
	next.Credentials = slices.DeleteFunc(next.Credentials, func(c Credential) bool {
		return c.EnvironmentID == env && c.ClientID == clientID
	})
	return next
}

// WithTeam sets or clears (nil) the owning team.
func (a Application) WithTeam(teamID *id.TeamID, now time.Time) Application {
	next := a.clone(now)
	next.TeamID = teamID
	return next
}

func (a Application) HasApi(apiID id.ApiID) bool {
	return slices.ContainsFunc(a.Apis, func(api Api) bool { return api.ID == apiID })
}

// WithApi adds api, replacing an existing reference with the same ID.
func (a Application) WithApi(api Api, now time.Time) Application {
	next := a.clone(now)
	next.Apis = slices.DeleteFunc(next.Apis, func(existing Api) bool { return existing.ID == api.ID })
	next.Apis = append(next.Apis, api)
	return next
}

func (a Application) WithoutApi(apiID id.ApiID, now time.Time) Application {
	next := a.clone(now)
	next.Apis = slices.DeleteFunc(next.Apis, func(api Api) bool { return api.ID == apiID })
	return next
}

// MarkDeleted soft-deletes the application. Credentials are dropped because
// their remote clients are removed before the mark is persisted.
func (a Application) MarkDeleted(by string, now time.Time) Application {
	next := a.clone(now)
	next.Deleted = &Deletion{At: now, By: by}
	next.Credentials = nil
	return next
}

// ApiScopes is the union of scopes across every endpoint of the directly-held Apis.
func (a Application) ApiScopes() map[string]struct{} {
	set := make(map[string]struct{})
	for _, api := range a.Apis {
		for _, ep := range api.Endpoints {
			for _, s := range ep.Scopes {
				set[s] = struct{}{}
			}
		}
	}
	return set
}

// Redacted strips every secret, for persistence of production-like state and for listings.
func (a Application) Redacted() Application {
	next := a
	next.Credentials = make([]Credential, len(a.Credentials))
	for i, c := range a.Credentials {
		next.Credentials[i] = c.WithoutSecret()
	}
	return next
}
