package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xlzd/gotp"

	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/logger"
)

// AuthService ties credential checks, two factor verification and token
// issuance together for the login and register flows.
type AuthService struct {
	userService    UserService
	settingService SettingService
}

// Login verifies the identifier/password pair and, when two factor auth
// is enabled, the TOTP code. It returns the authenticated user.
func (s *AuthService) Login(identifier, password, twoFactorCode string) (*model.User, error) {
	user, err := s.userService.CheckUser(identifier, password)
	if err != nil {
		return nil, err
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		return nil, err
	}
	if twoFactorEnable && user.IsAdmin() {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			return nil, err
		}
		if !gotp.NewDefaultTOTP(twoFactorToken).Verify(twoFactorCode, time.Now().Unix()) {
			logger.Warningf("two factor check failed for %s", user.Username)
			return nil, ErrWrongPassword
		}
	}
	return user, nil
}

// Register creates a regular account after checking the confirmation
// matches, then returns it so the caller can start a session.
func (s *AuthService) Register(username, email, fullName, password, confirm string) (*model.User, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	return s.userService.CreateUser(username, email, fullName, password, model.RoleUser)
}

// IssueToken signs a JWT for API clients. The token carries the same
// lifetime as the cookie session.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	secret, err := s.settingService.GetJwtSecret()
	if err != nil {
		return "", err
	}
	lifetime, err := s.settingService.GetSessionDuration()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":       user.Id,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(lifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a JWT and returns the user id it names.
func (s *AuthService) ParseToken(tokenString string) (int, error) {
	secret, err := s.settingService.GetJwtSecret()
	if err != nil {
		return 0, err
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrSessionExpired
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrSessionExpired
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrSessionExpired
	}
	return int(id), nil
}
