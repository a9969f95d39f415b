// Package session stores the logged-in user's id and expiry in the
// cookie session. Only the id is persisted; the user record is re-fetched
// from the database on every request.
package session

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserId  = "LOGIN_USER_ID"
	loginExpires = "LOGIN_EXPIRES"
)

// SetLoginUser records the user id and absolute expiry in the session.
func SetLoginUser(c *gin.Context, userId int, expires time.Time) error {
	s := sessions.Default(c)
	s.Set(loginUserId, userId)
	s.Set(loginExpires, expires.Unix())
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

// GetLoginUserId returns the session's user id, or 0 when absent.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id
		}
	}
	return 0
}

// GetExpires returns the session's absolute expiry, zero when absent.
func GetExpires(c *gin.Context) time.Time {
	s := sessions.Default(c)
	if obj := s.Get(loginExpires); obj != nil {
		if unix, ok := obj.(int64); ok {
			return time.Unix(unix, 0)
		}
	}
	return time.Time{}
}

// IsLogin reports whether a non-expired session is present. Expiry is
// detected lazily here, never swept proactively.
func IsLogin(c *gin.Context) bool {
	if GetLoginUserId(c) == 0 {
		return false
	}
	expires := GetExpires(c)
	return !expires.IsZero() && expires.After(time.Now())
}

// IsExpired reports whether a session was present but has passed its
// expiry.
func IsExpired(c *gin.Context) bool {
	if GetLoginUserId(c) == 0 {
		return false
	}
	expires := GetExpires(c)
	return expires.IsZero() || !expires.After(time.Now())
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie("scan2earn", "", -1, "/", "", false, true)
	return nil
}
