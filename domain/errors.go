package domain

import "fmt"

// LanguageError reports an identifier that resolves to no known language
// code. Role is "source" or "destination".
type LanguageError struct {
	Role       string
	Identifier string
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("invalid %s language %q", e.Role, e.Identifier)
}

// TransportError wraps a connection failure, timeout or non-success HTTP
// status from a service host. It is never retried.
type TransportError struct {
	Host   string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translate request to %s failed: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("translate request to %s failed: status %d", e.Host, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the response body did not contain a recoverable
// translated text. Stage names the decode step that gave up.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode response: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decode response: %s", e.Stage)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// OptionError reports an unknown field in a translate request body.
type OptionError struct {
	Name string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("unsupported option %q", e.Name)
}
