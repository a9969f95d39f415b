package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/web/service"
)

// ProfileForm is the admin edit request for a user account. Points is
// optional; when present the balance is moved via a ledger adjustment.
type ProfileForm struct {
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Points   *int   `json:"points" form:"points"`
}

// ResetPasswordForm carries a password reset for any account.
type ResetPasswordForm struct {
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// AdminForm is the create request for a secondary admin.
type AdminForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Password string `json:"password" form:"password"`
}

// AdminController exposes user management, admin management and the
// ledger overview to admins.
type AdminController struct {
	BaseController

	userService   service.UserService
	ledgerService service.LedgerService
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g.GET("/users", a.listUsers)
	g.POST("/users/:id/update", a.updateProfile)
	g.POST("/users/:id/resetPassword", a.resetPassword)

	g.GET("/admins", a.listAdmins)
	g.POST("/admins", a.createAdmin)
	g.POST("/admins/:id/demote", a.demoteAdmin)

	g.GET("/transactions", a.listTransactions)
	g.GET("/stats", a.stats)
	g.GET("/stats/daily", a.dailyHistogram)
	g.POST("/ledger/audit", a.auditLedger)
}

// listUsers returns all accounts, filtered by the optional q substring.
func (a *AdminController) listUsers(c *gin.Context) {
	users, err := a.userService.SearchUsers(c.Query("q"))
	jsonObj(c, users, err)
}

func (a *AdminController) updateProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.invalid"), err)
		return
	}
	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.invalid"), err)
		return
	}
	err = a.userService.UpdateProfile(id, form.Email, form.FullName)
	if err == nil && form.Points != nil {
		err = a.ledgerService.AdjustBalance(id, *form.Points)
	}
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.updated"), err)
}

func (a *AdminController) resetPassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.invalid"), err)
		return
	}
	var form ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.invalid"), err)
		return
	}
	err = a.userService.ResetPassword(id, form.NewPassword, form.ConfirmPassword)
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.passwordReset"), err)
}

func (a *AdminController) listAdmins(c *gin.Context) {
	admins, err := a.userService.ListAdmins()
	jsonObj(c, admins, err)
}

// createAdmin adds a secondary admin. The service enforces that only
// the main admin may do this.
func (a *AdminController) createAdmin(c *gin.Context) {
	var form AdminForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.admins.toasts.invalid"), err)
		return
	}
	admin, err := a.userService.CreateAdmin(loginUser(c), form.Username, form.Email, form.FullName, form.Password)
	jsonMsgObj(c, I18nWeb(c, "pages.admins.toasts.created"), admin, err)
}

// demoteAdmin turns a secondary admin back into a regular user.
func (a *AdminController) demoteAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.admins.toasts.invalid"), err)
		return
	}
	err = a.userService.DemoteAdmin(loginUser(c), id)
	jsonMsg(c, I18nWeb(c, "pages.admins.toasts.demoted"), err)
}

// listTransactions returns the full ledger, optionally filtered by
// period (today, week, month, year, all) and user id.
func (a *AdminController) listTransactions(c *gin.Context) {
	userId, _ := strconv.Atoi(c.Query("userId"))
	txs, err := a.ledgerService.ListAll(c.DefaultQuery("period", "all"), userId)
	jsonObj(c, txs, err)
}

// stats returns the dashboard aggregates, filtered by the optional
// period query (today, week, month, year, all).
func (a *AdminController) stats(c *gin.Context) {
	stats, err := a.ledgerService.Stats(c.DefaultQuery("period", "all"))
	jsonObj(c, stats, err)
}

func (a *AdminController) dailyHistogram(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	buckets, err := a.ledgerService.DailyHistogram(days)
	jsonObj(c, buckets, err)
}

func (a *AdminController) auditLedger(c *gin.Context) {
	repaired, err := a.ledgerService.Audit()
	jsonMsgObj(c, I18nWeb(c, "pages.admins.toasts.audited"), repaired, err)
}
