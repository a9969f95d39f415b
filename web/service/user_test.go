package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/util/crypto"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitSQLiteDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestCreateUserAndLogin(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.CreateUser("somchai", "somchai@example.com", "Somchai J.", "Abc12345!", "")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, 0, user.Points)

	// login by username and by email, case-insensitively
	got, err := service.CheckUser("SOMCHAI", "Abc12345!")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	got, err = service.CheckUser("Somchai@Example.com", "Abc12345!")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	_, err = service.CheckUser("somchai", "wrongpass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = service.CheckUser("nobody", "Abc12345!")
	assert.ErrorIs(t, err, ErrNoSuchAccount)
}

func TestCreateUserValidation(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.CreateUser("ab", "a@b.com", "", "Abc12345!", "")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.CreateUser("has space", "a@b.com", "", "Abc12345!", "")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.CreateUser("weakuser", "a@b.com", "", "abc", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = service.CreateUser("somchai", "somchai@example.com", "", "Abc12345!", "")
	assert.NoError(t, err)

	// duplicates are rejected case-insensitively
	_, err = service.CreateUser("SomChai", "other@example.com", "", "Abc12345!", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = service.CreateUser("another1", "SOMCHAI@example.com", "", "Abc12345!", "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLegacyHashUpgradeOnLogin(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.CreateUser("legacyuser", "legacy@example.com", "", "Abc12345!", "")
	assert.NoError(t, err)

	// plant a legacy hash as if migrated from the old deployment
	err = database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("password_hash", crypto.LegacyHash("Abc12345!")).Error
	assert.NoError(t, err)

	got, err := service.CheckUser("legacyuser", "Abc12345!")
	assert.NoError(t, err)

	refreshed, err := service.GetUser(got.Id)
	assert.NoError(t, err)
	assert.False(t, crypto.IsLegacyHash(refreshed.PasswordHash))
	assert.True(t, crypto.CheckPasswordHash(refreshed.PasswordHash, "Abc12345!"))
}

func TestResetPassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.CreateUser("resetme", "reset@example.com", "", "Abc12345!", "")
	assert.NoError(t, err)

	err = service.ResetPassword(user.Id, "short", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	err = service.ResetPassword(user.Id, "newpass1", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = service.ResetPassword(user.Id, "newpass1", "newpass1")
	assert.NoError(t, err)

	_, err = service.CheckUser("resetme", "newpass1")
	assert.NoError(t, err)
}

func TestMainAdminRules(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	mainAdmin, err := service.GetUser(model.MainAdminId)
	assert.NoError(t, err)
	assert.True(t, mainAdmin.IsMainAdmin())

	secondary, err := service.CreateAdmin(mainAdmin, "deputy01", "deputy@example.com", "Deputy", "Abc12345!")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, secondary.Role)

	// a secondary admin may not create or demote admins
	_, err = service.CreateAdmin(secondary, "deputy02", "deputy2@example.com", "", "Abc12345!")
	assert.ErrorIs(t, err, ErrForbidden)

	err = service.DemoteAdmin(secondary, mainAdmin.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	// the main admin can never be demoted, not even by itself
	err = service.DemoteAdmin(mainAdmin, mainAdmin.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	// demotion keeps the account, only the role changes
	err = service.DemoteAdmin(mainAdmin, secondary.Id)
	assert.NoError(t, err)

	demoted, err := service.GetUser(secondary.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, demoted.Role)

	// a plain user cannot be demoted again
	err = service.DemoteAdmin(mainAdmin, secondary.Id)
	assert.ErrorIs(t, err, ErrNotAnAdmin)
}

func TestSearchUsers(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.CreateUser("somchai", "somchai@example.com", "Somchai Jaidee", "Abc12345!", "")
	assert.NoError(t, err)
	_, err = service.CreateUser("malee22", "malee@example.com", "Malee S.", "Abc12345!", "")
	assert.NoError(t, err)

	users, err := service.SearchUsers("JAIDEE")
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "somchai", users[0].Username)

	// empty query lists everyone, including the seeded admin
	users, err = service.SearchUsers("")
	assert.NoError(t, err)
	assert.Len(t, users, 3)
}
