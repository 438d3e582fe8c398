package models

import (
	"time"

	id "devportal/pkg/domain"
	"devportal/pkg/secrets"
)

// Credential is one OAuth client in one environment.
type Credential struct {
	ClientID       id.ClientID      `json:"client_id"`
	EnvironmentID  id.EnvironmentID `json:"environment"`
	CreatedAt      time.Time        `json:"created_at"`
	Secret         string           `json:"secret,omitempty"`
	SecretFragment string           `json:"secret_fragment,omitempty"`
	// Hidden marks a production-like credential whose secret is unknown locally
	// and must be revealed by rotation.
	Hidden bool `json:"hidden"`
}

// NewCredential builds a credential from a freshly issued client. The fragment is
// derived from the secret so it survives after the secret is dropped.
func NewCredential(env id.EnvironmentID, clientID id.ClientID, secret string, now time.Time) Credential {
	return Credential{
		ClientID:       clientID,
		EnvironmentID:  env,
		CreatedAt:      now,
		Secret:         secret,
		SecretFragment: secrets.Fragment(secret),
	}
}

// NewHiddenCredential builds a production-like credential whose secret is not retained.
func NewHiddenCredential(env id.EnvironmentID, clientID id.ClientID, secret string, now time.Time) Credential {
	c := NewCredential(env, clientID, "", now)
	c.SecretFragment = secrets.Fragment(secret)
	c.Hidden = true
	return c
}

func (c Credential) WithoutSecret() Credential {
	c.Secret = ""
	return c
}

// WithSecret returns c carrying secret and its fragment.
func (c Credential) WithSecret(secret string) Credential {
	c.Secret = secret
	c.SecretFragment = secrets.Fragment(secret)
	return c
}

// Revealed returns c no longer hidden, carrying the rotated secret.
func (c Credential) Revealed(secret string) Credential {
	c = c.WithSecret(secret)
	c.Hidden = false
	return c
}
