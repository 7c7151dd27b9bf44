package client

import "fmt"

// TransportError means the request never completed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError means the journal service answered with a non-success status.
type ServiceError struct {
	Op         string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: journal service responded with status %d", e.Op, e.StatusCode)
}
