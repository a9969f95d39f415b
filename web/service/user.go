package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/util/crypto"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)

// UserService is the credential store: account lookup, creation and
// password management.
type UserService struct{}

// GetUser fetches a user by id.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByCredential looks up a user whose username or email matches the
// identifier case-insensitively. Returns nil without error when absent.
func (s *UserService) FindByCredential(identifier string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	ident := strings.ToLower(identifier)
	err := db.Model(model.User{}).
		Where("LOWER(username) = ? OR LOWER(email) = ?", ident, ident).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser registers a new account. Usernames and emails are unique
// case-insensitively; the password must score at least fair.
func (s *UserService) CreateUser(username, email, fullName, password, role string) (*model.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if crypto.PasswordStrength(password).Score < crypto.MinRegisterScore {
		return nil, ErrWeakPassword
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(model.User{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := db.Model(model.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		Points:       0,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies credentials and returns the account. Legacy hashes
// that verify are upgraded to bcrypt in place.
func (s *UserService) CheckUser(identifier, password string) (*model.User, error) {
	user, err := s.FindByCredential(identifier)
	if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSuchAccount
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrWrongPassword
	}

	if crypto.IsLegacyHash(user.PasswordHash) {
		if err := s.rehash(user, password); err != nil {
			logger.Warning("legacy hash upgrade failed:", err)
		}
	}
	return user, nil
}

func (s *UserService) rehash(user *model.User, password string) error {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("password_hash", hash).Error
}

// ListUsers returns all accounts ordered by id.
func (s *UserService) ListUsers() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Model(model.User{}).Order("id ASC").Find(&users).Error
	return users, err
}

// SearchUsers filters accounts by a case-insensitive substring of
// username, email or full name.
func (s *UserService) SearchUsers(query string) ([]model.User, error) {
	if query == "" {
		return s.ListUsers()
	}
	db := database.GetDB()
	var users []model.User
	q := "%" + strings.ToLower(query) + "%"
	err := db.Model(model.User{}).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", q, q, q).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// ListAdmins returns all admin accounts ordered by id.
func (s *UserService) ListAdmins() ([]model.User, error) {
	db := database.GetDB()
	var admins []model.User
	err := db.Model(model.User{}).
		Where("role = ?", model.RoleAdmin).
		Order("id ASC").
		Find(&admins).Error
	return admins, err
}

// UpdateProfile edits the contact fields any admin may change on an
// account. Point grants go through LedgerService.AdjustBalance so the
// balance stays backed by transactions.
func (s *UserService) UpdateProfile(id int, email, fullName string) error {
	return database.GetDB().Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"email": email, "full_name": fullName}).
		Error
}

// ResetPassword sets a new password for any account. The original panel
// only required six characters here, not the registration score.
func (s *UserService) ResetPassword(id int, newPassword, confirm string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}
	return database.GetDB().Model(model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// CreateAdmin adds a secondary admin. Only the main admin may do this.
func (s *UserService) CreateAdmin(actor *model.User, username, email, fullName, password string) (*model.User, error) {
	if actor == nil || !actor.IsMainAdmin() {
		return nil, ErrForbidden
	}
	return s.CreateUser(username, email, fullName, password, model.RoleAdmin)
}

// DemoteAdmin turns a secondary admin back into a regular user. The main
// admin can never be demoted, and only the main admin may demote others.
// Accounts are never hard-deleted.
func (s *UserService) DemoteAdmin(actor *model.User, targetId int) error {
	if actor == nil || !actor.IsMainAdmin() {
		return ErrForbidden
	}
	if targetId == model.MainAdminId {
		return ErrForbidden
	}
	target, err := s.GetUser(targetId)
	if err != nil {
		return err
	}
	if !target.IsAdmin() {
		return ErrNotAnAdmin
	}
	return database.GetDB().Model(model.User{}).
		Where("id = ?", targetId).
		Update("role", model.RoleUser).Error
}
