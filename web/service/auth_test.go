package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	setup()
	defer teardown()

	service := AuthService{}

	_, err := service.Register("newuser1", "new@example.com", "New User", "Abc12345!", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	user, err := service.Register("newuser1", "new@example.com", "New User", "Abc12345!", "Abc12345!")
	assert.NoError(t, err)

	got, err := service.Login("newuser1", "Abc12345!", "")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	_, err = service.Login("newuser1", "nope", "")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestTokenRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	service := AuthService{}

	user, err := service.Register("apiuser1", "api@example.com", "", "Abc12345!", "Abc12345!")
	assert.NoError(t, err)

	token, err := service.IssueToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := service.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.Id, id)

	_, err = service.ParseToken(token + "tampered")
	assert.ErrorIs(t, err, ErrSessionExpired)
}
