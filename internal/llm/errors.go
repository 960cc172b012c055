package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned when an upstream provider answers with a non-success
// status. It carries the status code and any body text for diagnostics.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s error %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s error %d", e.Provider, e.Status)
}

// ResponseError is returned when the decoded provider response does not match
// the expected shape (missing message/choice field, empty content).
type ResponseError struct {
	Provider string
	Reason   string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s returned an unexpected response shape: %s", e.Provider, e.Reason)
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusTooManyRequests
}

// IsPaymentRequired reports whether err is an upstream 402.
func IsPaymentRequired(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusPaymentRequired
}
