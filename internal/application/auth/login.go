package auth

import (
	"context"

	"github.com/graphauth/graphauth/internal/domain"
)

// Login authenticates a user and issues a session token.
// IMPORTANT: an unknown email and a wrong password must be indistinguishable
// to the caller (avoid user enumeration). Password complexity is not checked
// here; the policy applies only when credentials are created.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email, true)
	if err != nil {
		// Hide not-found behind the generic auth failure; anything else
		// (store unreachable) is not an authentication outcome and must
		// propagate as-is.
		if domain.Is(err, "user_not_found") {
			return AuthResult{}, domain.ErrAuthFailed()
		}
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrAuthFailed()
	}

	tok, err := s.issueToken(u.ID, u.Email)
	if err != nil {
		return AuthResult{}, err
	}

	// Never hand the hash back out of the login path.
	u.PasswordHash = ""
	return AuthResult{User: u, Token: tok}, nil
}
