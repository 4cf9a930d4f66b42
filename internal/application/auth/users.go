package auth

import (
	"context"

	"github.com/graphauth/graphauth/internal/domain"
)

// Users lists every registered user (without password hashes).
func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
