package audit

import "time"

// Event is emitted from domain logic after a state change. It is transport-agnostic
// so the same value feeds structured logs and the notification sink.
type Event struct {
	Timestamp     time.Time         `json:"timestamp"`
	Action        string            `json:"action"`
	Actor         string            `json:"actor,omitempty"`
	ApplicationID string            `json:"application_id,omitempty"`
	Environment   string            `json:"environment,omitempty"`
	Subject       string            `json:"subject,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

const (
	EventApplicationRegistered  = "application.registered"
	EventApplicationDeleted     = "application.deleted"
	EventApplicationTeamChanged = "application.team_changed"
	EventApiAdded               = "application.api_added"
	EventApiRemoved             = "application.api_removed"
	EventCredentialAdded        = "credential.added"
	EventCredentialRevealed     = "credential.revealed"
	EventCredentialDeleted      = "credential.deleted"
	EventScopesFixed            = "scopes.fixed"
	EventScopesMinimised        = "scopes.minimised"
	EventAccessRequestSubmitted = "access_request.submitted"
	EventAccessRequestApproved  = "access_request.approved"
	EventAccessRequestRejected  = "access_request.rejected"
	EventAccessRequestCancelled = "access_request.cancelled"
)
