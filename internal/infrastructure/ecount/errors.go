package ecount

import "fmt"

// LoginFailedError reports an upstream login that was answered but rejected:
// bad credentials, a missing session id, or an HTML/unparseable body that
// signals an outage or rate limiting. Raw carries an excerpt of the upstream
// body for diagnostics; credentials are never included.
type LoginFailedError struct {
	Reason string
	Raw    string
}

func (e *LoginFailedError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("ecount login failed: %s: %s", e.Reason, e.Raw)
	}
	return fmt.Sprintf("ecount login failed: %s", e.Reason)
}

// Details returns the diagnostic detail suitable for a client-facing error
// envelope.
func (e *LoginFailedError) Details() string {
	if e.Raw != "" {
		return e.Reason + ": " + e.Raw
	}
	return e.Reason
}
