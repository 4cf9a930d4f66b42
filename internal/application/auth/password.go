package auth

import (
	"context"

	"github.com/graphauth/graphauth/internal/domain"
)

// ChangePassword replaces the password of an authenticated user. The old
// password must match and the new one must satisfy the policy. Tokens already
// issued stay valid until they expire; there is no revocation list.
func (s *Service) ChangePassword(ctx context.Context, claim Claims, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return domain.ErrMissingField("oldPassword")
	}
	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, claim.Email, true)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.ErrAuthFailed()
		}
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return domain.ErrAuthFailed()
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	return s.users.UpdatePasswordHash(ctx, u.ID, newHash)
}
