package domain

import "fmt"

// ConfigError means required configuration is missing. Fatal for the run;
// not retryable without an operator fix.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}

// AuthError means no credentials are on file or the provider rejected the
// refresh. Fatal for the run. NotConnected distinguishes "the one-time
// consent flow was never completed" from a rejected exchange.
type AuthError struct {
	Msg          string
	NotConnected bool
}

func (e *AuthError) Error() string {
	return "auth: " + e.Msg
}

// FetchError means the calendar list call failed. Carries the provider's
// status code and a truncated response body for diagnostics.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return "calendar fetch: " + e.Body
	}
	return fmt.Sprintf("calendar fetch: status %d: %s", e.Status, e.Body)
}

// TruncateBody caps provider response bodies kept for diagnostics.
func TruncateBody(body string) string {
	const max = 200
	if len(body) > max {
		return body[:max]
	}
	return body
}
