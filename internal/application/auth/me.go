package auth

import (
	"context"

	"github.com/graphauth/graphauth/internal/domain"
)

// Me resolves the current user from a verified token claim. A claim whose
// user no longer exists resolves to the same generic auth failure as a
// missing identity.
func (s *Service) Me(ctx context.Context, claim Claims) (domain.User, error) {
	u, err := s.users.GetByEmail(ctx, claim.Email, false)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.User{}, domain.ErrAuthFailed()
		}
		return domain.User{}, err
	}
	return u, nil
}
