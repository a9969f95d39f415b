package service

import "errors"

// Domain errors surfaced to callers as Msg envelopes, never as aborts.
var (
	ErrDuplicateUsername    = errors.New("username is already taken")
	ErrDuplicateEmail       = errors.New("email is already taken")
	ErrNoSuchAccount        = errors.New("no such account")
	ErrWrongPassword        = errors.New("wrong password")
	ErrWeakPassword         = errors.New("password is too weak")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrInvalidUsername      = errors.New("username must be 4-20 letters, digits or underscores")
	ErrDuplicateBinId       = errors.New("bin code already exists")
	ErrBinNotFound          = errors.New("bin not found")
	ErrInvalidBinType       = errors.New("unknown bin type")
	ErrForbidden            = errors.New("forbidden")
	ErrNotAnAdmin           = errors.New("account is not an admin")
	ErrSessionExpired       = errors.New("session expired")
	ErrMalformedScanPayload = errors.New("malformed scan payload")
)
