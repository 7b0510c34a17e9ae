package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	user, err := r.Register("Budi Santoso", "budi@example.com", "+628123456789", "securepassword123")

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, "Budi Santoso", user.Name)
	assert.Equal(t, "+628123456789", user.WhatsApp)
	assert.NotEqual(t, "securepassword123", user.PasswordHash)
}

func TestRegistry_Register_NormalizesEmail(t *testing.T) {
	r := NewRegistry()

	user, err := r.Register("Budi", "  Budi@Example.COM ", "", "securepassword123")

	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
}

func TestRegistry_Register_DuplicateEmail(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Budi", "budi@example.com", "", "securepassword123")
	require.NoError(t, err)

	_, err = r.Register("Other", "BUDI@example.com", "", "anotherpassword")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegistry_Register_MissingFields(t *testing.T) {
	r := NewRegistry()

	_, err := r.Register("Budi", "", "", "securepassword123")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = r.Register("  ", "budi@example.com", "", "securepassword123")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = r.Register("Budi", "budi@example.com", "", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegistry_Login(t *testing.T) {
	r := NewRegistry()
	registered, err := r.Register("Budi", "budi@example.com", "", "securepassword123")
	require.NoError(t, err)

	user, err := r.Login("budi@example.com", "securepassword123")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestRegistry_Login_WrongPassword(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Budi", "budi@example.com", "", "securepassword123")
	require.NoError(t, err)

	_, err = r.Login("budi@example.com", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegistry_Login_UnknownEmail(t *testing.T) {
	r := NewRegistry()

	_, err := r.Login("nobody@example.com", "securepassword123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	registered, err := r.Register("Budi", "budi@example.com", "", "securepassword123")
	require.NoError(t, err)

	user, err := r.Get(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)

	_, err = r.Get("missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	registered, err := r.Register("Budi", "budi@example.com", "", "securepassword123")
	require.NoError(t, err)

	registered.Name = "Mutated"

	user, err := r.Get(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", user.Name)
}
