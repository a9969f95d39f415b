package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/web/middleware"
	"github.com/scan2earn/panel/web/service"
)

// APIController serves mobile and integration clients over JWT instead
// of cookie sessions.
type APIController struct {
	BaseController

	authService   service.AuthService
	ledgerService service.LedgerService
	binService    service.BinService
}

func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/api/v1")

	g.POST("/token", a.token)

	authed := g.Group("/", middleware.JWTAuth())
	authed.POST("/scan", a.scan)
	authed.POST("/scan/manual", a.manual)
	authed.GET("/history", a.history)
	authed.GET("/me", a.me)
	authed.GET("/bins", a.bins)

	admin := authed.Group("/", middleware.RoleRequired(model.RoleAdmin))
	admin.GET("/transactions", a.transactions)
}

// token exchanges credentials for a JWT.
func (a *APIController) token(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	user, err := a.authService.Login(form.Username, form.Password, form.TwoFactorCode)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.wrongUsernameOrPassword"), err)
		return
	}
	token, err := a.authService.IssueToken(user)
	jsonObj(c, gin.H{"token": token}, err)
}

func (a *APIController) scan(c *gin.Context) {
	user := loginUser(c)
	var form ScanForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.scan.toasts.invalid"), err)
		return
	}
	payload, _ := a.ledgerService.DecodeScanPayload(form.Payload)
	result, err := a.ledgerService.RecordScan(user.Id, payload)
	jsonObj(c, result, err)
}

func (a *APIController) manual(c *gin.Context) {
	user := loginUser(c)
	var form ScanForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.scan.toasts.invalid"), err)
		return
	}
	result, err := a.ledgerService.RecordScanForBin(user.Id, form.BinCode)
	jsonObj(c, result, err)
}

func (a *APIController) history(c *gin.Context) {
	user := loginUser(c)
	txs, err := a.ledgerService.ListForUser(user.Id)
	jsonObj(c, txs, err)
}

func (a *APIController) me(c *gin.Context) {
	jsonObj(c, loginUser(c), nil)
}

func (a *APIController) bins(c *gin.Context) {
	bins, err := a.binService.ListBins(true)
	jsonObj(c, bins, err)
}

func (a *APIController) transactions(c *gin.Context) {
	txs, err := a.ledgerService.ListAll(c.DefaultQuery("period", "all"), 0)
	jsonObj(c, txs, err)
}
