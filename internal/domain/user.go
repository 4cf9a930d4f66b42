package domain

// User is the identity record. PasswordHash is only populated when the
// repository is explicitly asked for it; no read path ever returns it to
// callers outside the login flow.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}
