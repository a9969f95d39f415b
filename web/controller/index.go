package controller

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/util/crypto"
	"github.com/scan2earn/panel/web/service"
	"github.com/scan2earn/panel/web/session"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	FullName        string `json:"fullName" form:"fullName"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// IndexController handles login, registration and logout.
type IndexController struct {
	BaseController

	settingService service.SettingService
	authService    service.AuthService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)

	g.POST("/passwordStrength", a.passwordStrength)
	g.POST("/getTwoFactorEnable", a.getTwoFactorEnable)
}

// login authenticates the user and opens a session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyUsername"))
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyPassword"))
		return
	}

	user, err := a.authService.Login(form.Username, form.Password, form.TwoFactorCode)
	if err != nil {
		logger.Warningf("failed login for \"%s\", IP: \"%s\"", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.wrongUsernameOrPassword"))
		return
	}

	a.startSession(c, user.Id)
	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	jsonObj(c, user, nil)
}

// register creates a new account and logs it straight in.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	user, err := a.authService.Register(form.Username, form.Email, form.FullName, form.Password, form.ConfirmPassword)
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, err.Error())
		return
	}

	a.startSession(c, user.Id)
	logger.Infof("%s registered, IP: %s", user.Username, getRemoteIp(c))
	jsonObj(c, user, nil)
}

func (a *IndexController) startSession(c *gin.Context, userId int) {
	lifetime, err := a.settingService.GetSessionDuration()
	if err != nil {
		logger.Warning("unable to get session lifetime:", err)
		lifetime = 7 * 24 * time.Hour
	}
	session.SetMaxAge(c, int(lifetime.Seconds()))
	if err := session.SetLoginUser(c, userId, time.Now().Add(lifetime)); err != nil {
		logger.Warning("unable to save session:", err)
	}
}

// logout clears the session.
func (a *IndexController) logout(c *gin.Context) {
	if userId := session.GetLoginUserId(c); userId > 0 {
		logger.Infof("user %d logged out", userId)
	}
	session.ClearSession(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("unable to save session after clearing:", err)
	}
	jsonMsg(c, I18nWeb(c, "pages.login.logoutSuccess"), nil)
}

// passwordStrength evaluates a candidate password for the live meter on
// the registration form.
func (a *IndexController) passwordStrength(c *gin.Context) {
	password := c.PostForm("password")
	jsonObj(c, crypto.PasswordStrength(password), nil)
}

// getTwoFactorEnable retrieves the current status of two-factor
// authentication.
func (a *IndexController) getTwoFactorEnable(c *gin.Context) {
	status, err := a.settingService.GetTwoFactorEnable()
	jsonObj(c, status, err)
}
