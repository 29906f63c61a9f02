package fetcher

import "fmt"

// ProviderError is returned when the search API answers with a non-success
// status.
type ProviderError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtube api error: %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("youtube api error: %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// MalformedResponseError is returned when a successful response does not have
// the expected list of search results.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed youtube response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed youtube response: %s: %v", e.Reason, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
