package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphauth/graphauth/internal/domain"
)

func TestUserRepo_CreateAssignsID(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()

	u, err := r.Create(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.PasswordHash, "create must not echo the hash")
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()

	_, err := r.Create(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = r.Create(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h2"})
	assert.True(t, domain.Is(err, "email_already_registered"))
}

func TestUserRepo_PasswordProjection(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	created, err := r.Create(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)

	u, err := r.GetByEmail(context.Background(), "a@b.com", false)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	u, err = r.GetByEmail(context.Background(), "a@b.com", true)
	require.NoError(t, err)
	assert.Equal(t, "h", u.PasswordHash)

	u, err = r.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
}

func TestUserRepo_NotFound(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()

	_, err := r.GetByEmail(context.Background(), "missing@b.com", false)
	assert.True(t, domain.Is(err, "user_not_found"))

	_, err = r.GetByID(context.Background(), "missing")
	assert.True(t, domain.Is(err, "user_not_found"))

	err = r.UpdatePasswordHash(context.Background(), "missing", "h")
	assert.True(t, domain.Is(err, "user_not_found"))
}

func TestUserRepo_EmailCaseSensitive(t *testing.T) {
	t.Parallel()

	// Emails are stored case-sensitively; A@b.com and a@b.com are distinct.
	r := NewUserRepo()
	_, err := r.Create(context.Background(), domain.User{Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = r.Create(context.Background(), domain.User{Email: "A@b.com", PasswordHash: "h"})
	assert.NoError(t, err)
}
