// Package controller provides the HTTP handlers of the scan2earn web
// panel: login and registration, scanning, the bin registry, user and
// admin management, settings and server status.
package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/web/locale"
)

// BaseController groups the shared embedding point of all controllers.
// Authentication lives in the middleware package.
type BaseController struct{}

// loginUser returns the user the auth middleware resolved for this
// request, or nil.
func loginUser(c *gin.Context) *model.User {
	if obj, exists := c.Get("loginUser"); exists {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

// I18nWeb retrieves an internationalized message for the web interface
// based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return ""
	}
	i18nFunc, _ := anyfunc.(func(i18nType locale.I18nType, key string, keyParams ...string) string)
	msg := i18nFunc(locale.Web, name, params...)
	return msg
}
