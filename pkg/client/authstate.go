package client

import "github.com/graphauth/graphauth/pkg/subject"

// AuthState is the client-side view of the current session. Exactly one
// instance of the subject exists per client session; it is constructed by
// the application's composition root and injected wherever it is read,
// never held as a package-level singleton.
type AuthState struct {
	ID        string
	Email     string
	LoggedIn  bool
	Resolving bool
}

// NewAuthSubject returns a subject holding the initial "still resolving,
// not logged in" state. A full restart of the client resets to this value.
func NewAuthSubject() *subject.Subject[AuthState] {
	return subject.New(AuthState{Resolving: true})
}
