package auth

import (
	"context"
	"time"

	"github.com/graphauth/graphauth/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.

The password hash is excluded from results unless withPassword is set;
only the login path ever asks for it.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string, withPassword bool) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)

	// Create inserts a new user. The repository assigns the ID and enforces
	// email uniqueness with its own constraint; callers may pre-check for a
	// friendlier error but must tolerate the constraint firing anyway.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Hash is one-way and salted; Compare uses the scheme's own
comparison primitive and never touches plaintext-to-plaintext.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by the service and the request-context transport.
*/
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenSigner interface {
	Issue(userID, email string, ttl time.Duration) (string, error)
	Verify(token string) (Claims, error)
}
