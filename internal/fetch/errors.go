package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Errors returned by sources wrap one of these.
var (
	ErrNetwork     = errors.New("network failure")
	ErrHTTPStatus  = errors.New("unexpected HTTP status")
	ErrParse       = errors.New("invalid response body")
	ErrRateLimited = errors.New("rate limited")
)

// StatusError is returned for any non-2xx response.
// A 429 matches ErrRateLimited, anything else matches ErrHTTPStatus.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s from %s", e.Code, http.StatusText(e.Code), e.URL)
}

// Is lets errors.Is classify a StatusError.
func (e *StatusError) Is(target error) bool {
	if e.Code == http.StatusTooManyRequests {
		return target == ErrRateLimited
	}
	return target == ErrHTTPStatus
}

// IsRateLimited reports whether err is a 429 from the remote source.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// failureReason maps an error to a short label for logs and metrics.
func failureReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrHTTPStatus):
		return "http_status"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "other"
	}
}
