package service

import (
	"testing"

	"go-warehouse/internal/model"
	"go-warehouse/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	result, err := env.auth.Login("staff@example.com", "secret123", false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, session.DefaultTTL, result.TTL)
	assert.Equal(t, staff.ID, result.User.ID)

	claims, err := session.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.UserID)
	assert.Equal(t, model.RoleStaff, claims.Role)
}

func TestLoginRememberExtendsSession(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env, "staff@example.com", model.RoleStaff)

	result, err := env.auth.Login("staff@example.com", "secret123", true)
	require.NoError(t, err)
	assert.Equal(t, session.RememberTTL, result.TTL)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	// Wrong password
	_, err := env.auth.Login("staff@example.com", "wrong", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email
	_, err = env.auth.Login("nobody@example.com", "secret123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Deactivated account
	require.NoError(t, env.userRepo.SetActive(staff.ID, false))
	_, err = env.auth.Login("staff@example.com", "secret123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	updated, err := env.auth.UpdateProfile(staff.ID, &UpdateProfileRequest{
		FullName: "New Name",
		Phone:    "0912345678",
		Address:  "Warehouse Rd 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "0912345678", updated.Phone)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	// Wrong current password leaves everything unchanged.
	_, err := env.auth.UpdateProfile(staff.ID, &UpdateProfileRequest{
		FullName:        "Name",
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login("staff@example.com", "secret123", false)
	require.NoError(t, err)

	_, err = env.auth.UpdateProfile(staff.ID, &UpdateProfileRequest{
		FullName:        "Name",
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = env.auth.Login("staff@example.com", "newsecret", false)
	assert.NoError(t, err)
	_, err = env.auth.Login("staff@example.com", "secret123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
