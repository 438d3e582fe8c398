// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "devportal/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing an ApplicationID where a TeamID is expected.
type (
	ApplicationID   uuid.UUID
	AccessRequestID uuid.UUID
	TeamID          uuid.UUID
	ApiID           uuid.UUID
)

// EnvironmentID names a deployment environment ("test", "production").
type EnvironmentID string

// ClientID is the opaque client identifier issued by the identity gateway.
type ClientID string

func NewApplicationID() ApplicationID     { return ApplicationID(uuid.New()) }
func NewAccessRequestID() AccessRequestID { return AccessRequestID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseApplicationID(s string) (ApplicationID, error) {
	id, err := parseUUID(s, "application ID")
	return ApplicationID(id), err
}

func ParseAccessRequestID(s string) (AccessRequestID, error) {
	id, err := parseUUID(s, "access request ID")
	return AccessRequestID(id), err
}

func ParseTeamID(s string) (TeamID, error) {
	id, err := parseUUID(s, "team ID")
	return TeamID(id), err
}

func ParseApiID(s string) (ApiID, error) {
	id, err := parseUUID(s, "api ID")
	return ApiID(id), err
}

func ParseEnvironmentID(s string) (EnvironmentID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "environment cannot be empty")
	}
	return EnvironmentID(s), nil
}

func ParseClientID(s string) (ClientID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "client ID cannot be empty")
	}
	return ClientID(s), nil
}

// String methods - for logging and debugging.

func (id ApplicationID) String() string   { return uuid.UUID(id).String() }
func (id AccessRequestID) String() string { return uuid.UUID(id).String() }
func (id TeamID) String() string          { return uuid.UUID(id).String() }
func (id ApiID) String() string           { return uuid.UUID(id).String() }
func (id EnvironmentID) String() string   { return string(id) }
func (id ClientID) String() string        { return string(id) }

// IsNil checks - used for service-layer validation.

func (id ApplicationID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id AccessRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TeamID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id ApiID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id ClientID) IsNil() bool        { return id == "" }

// parseUUID is the shared validation logic.
// Nil UUIDs are allowed here so store lookups return proper "not found" errors.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
