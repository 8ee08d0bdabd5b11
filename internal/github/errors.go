package github

import "fmt"

// FetchErrorKind distinguishes why a profile fetch failed. The original
// service collapsed these into one free-text message; callers here can
// branch on the kind.
type FetchErrorKind string

const (
	// KindNoCredential means no GitHub token was configured.
	KindNoCredential FetchErrorKind = "no_credential"
	// KindUserNotFound means the account does not exist (or is not visible
	// to the configured token).
	KindUserNotFound FetchErrorKind = "user_not_found"
	// KindTransport covers network and unexpected API failures.
	KindTransport FetchErrorKind = "transport"
)

// FetchError is returned by Fetcher.FetchProfile. It is reported to the
// caller, never retried.
type FetchError struct {
	Kind FetchErrorKind
	User string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github profile fetch for %q failed (%s): %v", e.User, e.Kind, e.Err)
	}
	return fmt.Sprintf("github profile fetch for %q failed (%s)", e.User, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
