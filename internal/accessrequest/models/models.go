package models

import (
	"slices"
	"time"

	appmodels "devportal/internal/application/models"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

// Status is the access request lifecycle state. Every state except Pending is terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// AccessRequest asks for the scopes of one API's endpoints for one application in one environment.
// Once Approved, Endpoints is the permanent record of what was granted.
type AccessRequest struct {
	ID                    id.AccessRequestID   `json:"id"`
	ApplicationID         id.ApplicationID     `json:"application_id"`
	ApiID                 id.ApiID             `json:"api_id"`
	ApiName               string               `json:"api_name"`
	EnvironmentID         id.EnvironmentID     `json:"environment"`
	Status                Status               `json:"status"`
	Endpoints             []appmodels.Endpoint `json:"endpoints"`
	SupportingInformation string               `json:"supporting_information,omitempty"`
	RequestedBy           string               `json:"requested_by"`
	RequestedAt           time.Time            `json:"requested_at"`
	Decision              *Decision            `json:"decision,omitempty"`
	Cancellation          *Cancellation        `json:"cancellation,omitempty"`
}

type Decision struct {
	At     time.Time `json:"decided_at"`
	By     string    `json:"decided_by"`
	Reason string    `json:"rejected_reason,omitempty"`
}

type Cancellation struct {
	At time.Time `json:"cancelled_at"`
	By string    `json:"cancelled_by"`
}

func (ar AccessRequest) IsPending() bool {
	return ar.Status == StatusPending
}

func (ar AccessRequest) requirePending() error {
	if !ar.IsPending() {
		return dErrors.New(dErrors.CodeAccessRequestStatusInvalid,
			"access request is "+string(ar.Status)+", expected "+string(StatusPending))
	}
	return nil
}

// Approve returns the approved copy, or AccessRequestStatusInvalid when not Pending.
func (ar AccessRequest) Approve(by string, now time.Time) (AccessRequest, error) {
	if err := ar.requirePending(); err != nil {
		return ar, err
	}
	next := ar
	next.Status = StatusApproved
	next.Decision = &Decision{At: now, By: by}
	return next, nil
}

// Reject returns the rejected copy carrying reason.
func (ar AccessRequest) Reject(by, reason string, now time.Time) (AccessRequest, error) {
	if reason == "" {
		return ar, dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}
	if err := ar.requirePending(); err != nil {
		return ar, err
	}
	next := ar
	next.Status = StatusRejected
	next.Decision = &Decision{At: now, By: by, Reason: reason}
	return next, nil
}

func (ar AccessRequest) Cancel(by string, now time.Time) (AccessRequest, error) {
	if err := ar.requirePending(); err != nil {
		return ar, err
	}
	next := ar
	next.Status = StatusCancelled
	next.Cancellation = &Cancellation{At: now, By: by}
	return next, nil
}

// Scopes is the deduplicated, sorted union of scopes over every endpoint.
func (ar AccessRequest) Scopes() []string {
	var out []string
	for _, ep := range ar.Endpoints {
		for _, s := range ep.Scopes {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Filter narrows Find. Nil fields match everything.
type Filter struct {
	ApplicationID *id.ApplicationID
	ApiID         *id.ApiID
	EnvironmentID *id.EnvironmentID
	Status        *Status
}

func (f Filter) Matches(ar AccessRequest) bool {
	if f.ApplicationID != nil && ar.ApplicationID != *f.ApplicationID {
		return false
	}
	if f.ApiID != nil && ar.ApiID != *f.ApiID {
		return false
	}
	if f.EnvironmentID != nil && ar.EnvironmentID != *f.EnvironmentID {
		return false
	}
	if f.Status != nil && ar.Status != *f.Status {
		return false
	}
	return true
}
