// Package scopes converges the scope sets of remote IDM clients with what an
// application has been granted.
package scopes

import (
	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/models"
	"devportal/internal/environment"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/strings"
)

// Target selects the credentials a run operates on.
type Target struct {
	Environment id.EnvironmentID
	// ClientID narrows the run to one credential when set.
	ClientID *id.ClientID
}

// EnvironmentTarget covers every credential the application holds in env.
func EnvironmentTarget(env id.EnvironmentID) Target {
	return Target{Environment: env}
}

// CredentialTarget covers a single credential.
func CredentialTarget(env id.EnvironmentID, clientID id.ClientID) Target {
	return Target{Environment: env, ClientID: &clientID}
}

// Required is the sorted set of scopes every credential of app in env must hold:
// the scopes of approved access requests for app in env, plus, outside
// production-like environments, the scopes of the application's own Apis.
func Required(app models.Application, requests []armodels.AccessRequest, env environment.Environment) []string {
	set := make(map[string]struct{})
	for _, ar := range requests {
		if ar.ApplicationID != app.ID || ar.EnvironmentID != env.ID || ar.Status != armodels.StatusApproved {
			continue
		}
		for _, s := range ar.Scopes() {
			set[s] = struct{}{}
		}
	}
	if !env.ProductionLike {
		for s := range app.ApiScopes() {
			set[s] = struct{}{}
		}
	}
	return strings.SortedKeys(set)
}

// missing returns the elements of required absent from remote, keeping order.
func missing(required, remote []string) []string {
	have := make(map[string]struct{}, len(remote))
	for _, s := range remote {
		have[s] = struct{}{}
	}
	var out []string
	for _, s := range required {
		if _, ok := have[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// extra returns the elements of remote absent from allowed.
func extra(remote []string, allowed map[string]struct{}) []string {
	var out []string
	for _, s := range remote {
		if _, ok := allowed[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
