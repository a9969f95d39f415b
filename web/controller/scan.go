package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/web/service"
)

// ScanForm carries a decoded QR payload or a manually entered bin code.
type ScanForm struct {
	Payload string `json:"payload" form:"payload"`
	BinCode string `json:"binCode" form:"binCode"`
}

// ScanController handles the scan flow and a user's own ledger view.
type ScanController struct {
	BaseController

	ledgerService service.LedgerService
}

func NewScanController(g *gin.RouterGroup) *ScanController {
	a := &ScanController{}
	a.initRouter(g)
	return a
}

func (a *ScanController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/scan")

	g.POST("/", a.scan)
	g.POST("/manual", a.manual)
	g.GET("/history", a.history)
	g.GET("/me", a.me)
}

// scan records a QR scan. A payload that fails to parse still earns the
// base general award.
func (a *ScanController) scan(c *gin.Context) {
	user := loginUser(c)
	if user == nil {
		return
	}
	var form ScanForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.scan.toasts.invalid"), err)
		return
	}

	payload, err := a.ledgerService.DecodeScanPayload(form.Payload)
	if err != nil && !errors.Is(err, service.ErrMalformedScanPayload) {
		jsonMsg(c, I18nWeb(c, "pages.scan.toasts.invalid"), err)
		return
	}

	result, err := a.ledgerService.RecordScan(user.Id, payload)
	jsonMsgObj(c, I18nWeb(c, "pages.scan.toasts.recorded"), result, err)
}

// manual records a scan by bin code for users without a camera.
func (a *ScanController) manual(c *gin.Context) {
	user := loginUser(c)
	if user == nil {
		return
	}
	var form ScanForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.scan.toasts.invalid"), err)
		return
	}

	result, err := a.ledgerService.RecordScanForBin(user.Id, form.BinCode)
	jsonMsgObj(c, I18nWeb(c, "pages.scan.toasts.recorded"), result, err)
}

// history returns the caller's transactions, newest first.
func (a *ScanController) history(c *gin.Context) {
	user := loginUser(c)
	if user == nil {
		return
	}
	txs, err := a.ledgerService.ListForUser(user.Id)
	jsonObj(c, txs, err)
}

// me returns the caller's account including the current point balance.
func (a *ScanController) me(c *gin.Context) {
	jsonObj(c, loginUser(c), nil)
}
