package client

import "fmt"

// RemoteRequestError reports a non-2xx response from the dashboard API.
type RemoteRequestError struct {
	Status     int
	StatusText string
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("api request failed: %s", e.StatusText)
}

// MalformedResponseError reports a response body that could not be
// decoded into the expected shape.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
