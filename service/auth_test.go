package service

import (
	"testing"

	"github.com/beka-birhanu/vinom-mdp/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService(t *testing.T) {
	repo := newFakeOperatorRepo()
	tokenizer := &fakeTokenizer{}
	auth, err := NewAuthService(repo, tokenizer)
	require.NoError(t, err)

	const password = "cobalt-Heron-tangerine-42"

	t.Run("Register stores the operator", func(t *testing.T) {
		require.NoError(t, auth.Register("grid_runner", password))
		op, err := repo.ByName("grid_runner")
		require.NoError(t, err)
		assert.True(t, op.VerifyPassword(password))
	})

	t.Run("Register rejects weak passwords", func(t *testing.T) {
		err := auth.Register("second", "password")
		assert.ErrorIs(t, err, identity.ErrWeakPassword)
	})

	t.Run("Register rejects taken names", func(t *testing.T) {
		err := auth.Register("grid_runner", password)
		assert.ErrorIs(t, err, identity.ErrNameConflict)
	})

	t.Run("SignIn issues a token", func(t *testing.T) {
		op, token, err := auth.SignIn("grid_runner", password)
		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Equal(t, op.ID.String(), tokenizer.claims[ClaimOperatorID])
		assert.Equal(t, "grid_runner", tokenizer.claims[ClaimOperatorName])
	})

	t.Run("SignIn rejects bad credentials", func(t *testing.T) {
		_, _, err := auth.SignIn("grid_runner", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = auth.SignIn("nobody", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Needs collaborators", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer)
		assert.Error(t, err)
	})
}
