package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "devportal/pkg/domain-errors"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding error cannot change the status.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError translates a domain error into an HTTP response. Upstream failures
// are reported with a generic description so remote detail never leaks.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	resp := ErrorResponse{Error: DomainCodeToHTTPCode(domainErr.Code)}
	switch domainErr.Code {
	case dErrors.CodeUpstream:
		resp.ErrorDescription = "an upstream service failed, retry later"
	case dErrors.CodeInternal:
	default:
		resp.ErrorDescription = domainErr.Message
	}
	WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), resp)
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound, dErrors.CodeApplicationNotFound, dErrors.CodeAccessRequestNotFound,
		dErrors.CodeCredentialNotFound, dErrors.CodeTeamNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeCredentialLimitExceeded, dErrors.CodeAccessRequestStatusInvalid:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeUpstream:
		return http.StatusBadGateway
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the "error" field of the response.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return "bad_request"
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeNotFound, dErrors.CodeApplicationNotFound, dErrors.CodeAccessRequestNotFound,
		dErrors.CodeCredentialNotFound, dErrors.CodeTeamNotFound,
		dErrors.CodeConflict, dErrors.CodeCredentialLimitExceeded, dErrors.CodeAccessRequestStatusInvalid,
		dErrors.CodeUnauthorized, dErrors.CodeForbidden, dErrors.CodeUpstream, dErrors.CodeTimeout:
		return string(code)
	default:
		return string(dErrors.CodeInternal)
	}
}
