package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefixHasher is a reversible stand-in for bcrypt.
type prefixHasher struct {
	calls int
	err   error
}

func (h *prefixHasher) Hash(password string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h *prefixHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleVoter.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("superuser").IsValid())
}

func TestUser_BeforeSave_HashesModifiedPassword(t *testing.T) {
	h := &prefixHasher{}
	u := User{}
	u.SetPassword("secret")
	require.True(t, u.PasswordModified())

	require.NoError(t, u.BeforeSave(h))

	assert.Equal(t, "hashed:secret", u.Password)
	assert.False(t, u.PasswordModified())
	assert.Equal(t, 1, h.calls)
}

func TestUser_BeforeSave_HashesOnlyOnce(t *testing.T) {
	h := &prefixHasher{}
	u := User{}
	u.SetPassword("secret")

	require.NoError(t, u.BeforeSave(h))
	require.NoError(t, u.BeforeSave(h))

	assert.Equal(t, "hashed:secret", u.Password)
	assert.Equal(t, 1, h.calls)
}

func TestUser_BeforeSave_LeavesStoredHashUntouched(t *testing.T) {
	h := &prefixHasher{}
	u := User{Password: "hashed:stored"}

	require.NoError(t, u.BeforeSave(h))

	assert.Equal(t, "hashed:stored", u.Password)
	assert.Zero(t, h.calls)
}

func TestUser_BeforeSave_HasherError(t *testing.T) {
	h := &prefixHasher{err: errors.New("boom")}
	u := User{}
	u.SetPassword("secret")

	err := u.BeforeSave(h)

	require.Error(t, err)
	assert.ErrorIs(t, err, h.err)
	assert.True(t, u.PasswordModified())
}

func TestUser_ComparePassword(t *testing.T) {
	h := &prefixHasher{}
	u := User{}
	u.SetPassword("secret")

	assert.False(t, u.ComparePassword(h, "secret"), "plaintext must never be compared")

	require.NoError(t, u.BeforeSave(h))

	assert.True(t, u.ComparePassword(h, "secret"))
	assert.False(t, u.ComparePassword(h, "other"))
}

func TestSignupRequest_ToUser(t *testing.T) {
	req := SignupRequest{
		Name:             "Asha",
		Age:              30,
		AadharCardNumber: "123456789012",
		Password:         "secret",
		Role:             RoleAdmin,
	}

	u := req.ToUser()

	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, 30, u.Age)
	assert.Equal(t, "123456789012", u.AadharCardNumber)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "secret", u.Password)
	assert.True(t, u.PasswordModified())
}

func TestSignupRequest_ToUser_NoPassword(t *testing.T) {
	u := SignupRequest{Name: "Asha"}.ToUser()

	assert.Empty(t, u.Password)
	assert.False(t, u.PasswordModified())
}

func TestCandidateUpdate_IsEmpty(t *testing.T) {
	name := "New"

	assert.True(t, CandidateUpdate{ID: "c1"}.IsEmpty())
	assert.False(t, CandidateUpdate{ID: "c1", Name: &name}.IsEmpty())
}
