package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/web/service"
)

// BinForm is the create/update request for a bin.
type BinForm struct {
	Code     string `json:"id" form:"id"`
	Type     string `json:"type" form:"type"`
	Location string `json:"location" form:"location"`
	Active   *bool  `json:"active" form:"active"`
}

// BinController manages the bin registry and its printable QR codes.
type BinController struct {
	BaseController

	binService    service.BinService
	qrCodeService service.QRCodeService
}

func NewBinController(g *gin.RouterGroup) *BinController {
	a := &BinController{}
	a.initRouter(g)
	return a
}

func (a *BinController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/bins")

	g.GET("/", a.list)
	g.GET("/:code", a.get)
	g.POST("/", a.create)
	g.POST("/:code/update", a.update)
	g.POST("/:code/active", a.setActive)
	g.POST("/:code/del", a.del)

	g.GET("/:code/qrcode.png", a.qrcodePNG)
	g.GET("/qrcodes", a.listQRCodes)
	g.POST("/:code/qrcode/del", a.delQRCode)
}

func (a *BinController) list(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	bins, err := a.binService.ListBins(activeOnly)
	jsonObj(c, bins, err)
}

func (a *BinController) get(c *gin.Context) {
	bin, err := a.binService.GetBin(c.Param("code"))
	jsonObj(c, bin, err)
}

func (a *BinController) create(c *gin.Context) {
	var form BinForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.bins.toasts.invalid"), err)
		return
	}
	bin, err := a.binService.CreateBin(form.Code, model.BinType(form.Type), form.Location)
	jsonMsgObj(c, I18nWeb(c, "pages.bins.toasts.created"), bin, err)
}

func (a *BinController) update(c *gin.Context) {
	var form BinForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.bins.toasts.invalid"), err)
		return
	}
	err := a.binService.UpdateBin(c.Param("code"), model.BinType(form.Type), form.Location)
	jsonMsg(c, I18nWeb(c, "pages.bins.toasts.updated"), err)
}

func (a *BinController) setActive(c *gin.Context) {
	active := c.PostForm("active") == "true"
	err := a.binService.SetActive(c.Param("code"), active)
	jsonMsg(c, I18nWeb(c, "pages.bins.toasts.updated"), err)
}

func (a *BinController) del(c *gin.Context) {
	err := a.binService.DeleteBin(c.Param("code"))
	jsonMsg(c, I18nWeb(c, "pages.bins.toasts.deleted"), err)
}

// qrcodePNG streams the printable QR image for a bin.
func (a *BinController) qrcodePNG(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := a.qrCodeService.GeneratePNG(c.Param("code"), size)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.bins.toasts.qrFailed"), err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (a *BinController) listQRCodes(c *gin.Context) {
	codes, err := a.qrCodeService.ListQRCodes()
	jsonObj(c, codes, err)
}

func (a *BinController) delQRCode(c *gin.Context) {
	err := a.qrCodeService.DeleteQRCode(c.Param("code"))
	jsonMsg(c, I18nWeb(c, "pages.bins.toasts.deleted"), err)
}
