package auth

import (
	"context"

	"github.com/graphauth/graphauth/internal/domain"
)

// Register validates the candidate credentials, creates the user record and
// issues a session token.
//
// The duplicate-email pre-check and the insert are two separate operations
// with no transactional guarantee; two concurrent registrations for the same
// email can both pass the check. The store's unique constraint is the real
// enforcement, the pre-check only exists for a fast-path error message.
func (s *Service) Register(ctx context.Context, email, password string) (AuthResult, error) {
	// No normalization: an email with surrounding whitespace is simply not a
	// valid email.
	if email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return AuthResult{}, domain.ErrInvalidEmail()
	}
	if err := s.policy.Validate(password); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email, false); err == nil {
		return AuthResult{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return AuthResult{}, err
	}

	tok, err := s.issueToken(created.ID, created.Email)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: created, Token: tok}, nil
}
