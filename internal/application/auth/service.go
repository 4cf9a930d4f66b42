package auth

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/graphauth/graphauth/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	policy   domain.PasswordPolicy
	tokenTTL time.Duration
	validate *validator.Validate
}

type Config struct {
	TokenTTL time.Duration
	Policy   domain.PasswordPolicy
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	policy := cfg.Policy
	if policy.MinLength <= 0 || policy.MaxLength <= 0 {
		policy = domain.DefaultPasswordPolicy()
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		policy:   policy,
		tokenTTL: ttl,
		validate: validator.New(),
	}
}

// AuthResult is the common output for the credential-bearing flows. The
// transport sets Token as the session cookie; the user view goes to the
// caller.
type AuthResult struct {
	User  domain.User
	Token string
}

// TokenTTL reports the configured session lifetime, so the transport can set
// a matching cookie max-age.
func (s *Service) TokenTTL() time.Duration { return s.tokenTTL }

func (s *Service) issueToken(userID, email string) (string, error) {
	tok, err := s.signer.Issue(userID, email, s.tokenTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return tok, nil
}
