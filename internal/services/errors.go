package services

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spotools/internal/shared"
)

// ConfigValidationError reports a malformed [Options] value. It is returned before any network activity.
type ConfigValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("%v: %s %q %s", shared.ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigValidationError) Unwrap() error { return shared.ErrInvalidConfig }

// FieldIssue is a single input problem, keyed by the JSON field it belongs to.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every issue found in one operation input.
type ValidationError struct {
	Operation string
	Issues    []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return fmt.Sprintf("%v for %s: %s", shared.ErrInvalidInput, e.Operation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return shared.ErrInvalidInput }

// Issue returns the first issue attached to field.
func (e *ValidationError) Issue(field string) (FieldIssue, bool) {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return issue, true
		}
	}
	return FieldIssue{}, false
}

// MissingCredentialError is returned when neither an explicit token nor the fallback variable is set.
type MissingCredentialError struct {
	SourceName string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%v: no access token configured and environment variable %s is empty", shared.ErrMissingCredentials, e.SourceName)
}

func (e *MissingCredentialError) Unwrap() error { return shared.ErrMissingCredentials }

// UserResolutionError is returned by [SpotifyService.CreatePlaylist] when no target account id can be found.
type UserResolutionError struct{}

func (e *UserResolutionError) Error() string {
	return fmt.Sprintf("%v: no userId given, no default user configured and /me returned no id", shared.ErrUserResolution)
}

func (e *UserResolutionError) Unwrap() error { return shared.ErrUserResolution }

// RemoteAPIError carries a non-2xx status and the (truncated) response body.
type RemoteAPIError struct {
	Status int
	Detail string
}

func (e *RemoteAPIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: spotify responded %d", shared.ErrAPIRequest, e.Status)
	}
	return fmt.Sprintf("%v: spotify responded %d: %s", shared.ErrAPIRequest, e.Status, e.Detail)
}

func (e *RemoteAPIError) Unwrap() error { return shared.ErrAPIRequest }
