package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/web/service"
	"github.com/scan2earn/panel/web/session"
)

const ctxUserKey = "loginUser"

// SessionAuth loads the logged-in user from the cookie session into the
// request context. Expired sessions are cleared on the spot and the
// request rejected.
func SessionAuth() gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		if session.IsExpired(c) {
			session.ClearSession(c)
			abortUnauthorized(c, "session expired")
			return
		}
		if !session.IsLogin(c) {
			abortUnauthorized(c, "login required")
			return
		}

		user, err := userService.GetUser(session.GetLoginUserId(c))
		if err != nil {
			session.ClearSession(c)
			abortUnauthorized(c, "login required")
			return
		}

		c.Set(ctxUserKey, user)
		c.Set("role", user.Role)
		c.Next()
	}
}

// JWTAuth authenticates API clients by bearer token.
func JWTAuth() gin.HandlerFunc {
	authService := service.AuthService{}
	userService := service.UserService{}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			abortUnauthorized(c, "bearer token required")
			return
		}

		userId, err := authService.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		user, err := userService.GetUser(userId)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ctxUserKey, user)
		c.Set("role", user.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": msg})
}
