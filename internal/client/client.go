// Package client implements the HTTP lookup clients used to resolve
// entities owned by sibling services.  Every call is a single request
// with a bounded timeout; nothing is cached and nothing is retried.
// A missing entity (404) is reported as an absent result, while a
// transport-level failure — timeout, connection error, unexpected
// status, undecodable body — becomes a *CommunicationError so callers
// that need a hard existence guarantee can tell the two apart.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CommunicationError reports that a collaborator service could not be
// asked at all.  It never means "the entity does not exist".
type CommunicationError struct {
	Service string // collaborator name, e.g. "user-service"
	Err     error  // underlying transport or decode failure
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.Service, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// getJSON performs one GET against a collaborator and decodes the body
// into out.  It returns (false, nil) on 404, (true, nil) on success and
// a *CommunicationError for everything else.
func getJSON(ctx context.Context, httpc *http.Client, service, url string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, &CommunicationError{Service: service, Err: err}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return false, &CommunicationError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, &CommunicationError{Service: service, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &CommunicationError{Service: service, Err: err}
	}
	return true, nil
}

// newHTTPClient builds the shared transport configuration.  The timeout
// caps the whole request including body read.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
