package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/web/entity"
	"github.com/scan2earn/panel/web/service"
)

// SettingController exposes the panel settings to admins.
type SettingController struct {
	BaseController

	settingService service.SettingService
}

func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/setting")

	g.POST("/all", a.getAllSetting)
	g.POST("/update", a.updateSetting)
	g.POST("/reset", a.resetSetting)
	g.POST("/theme", a.setTheme)
	g.POST("/trustScanPoints", a.setTrustScanPoints)
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	jsonObj(c, allSetting, err)
}

func (a *SettingController) updateSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.settings.toasts.invalid"), err)
		return
	}
	err := a.settingService.UpdateAllSetting(allSetting)
	jsonMsg(c, I18nWeb(c, "pages.settings.toasts.saved"), err)
}

func (a *SettingController) resetSetting(c *gin.Context) {
	err := a.settingService.ResetSettings()
	jsonMsg(c, I18nWeb(c, "pages.settings.toasts.reset"), err)
}

func (a *SettingController) setTheme(c *gin.Context) {
	err := a.settingService.SetTheme(c.PostForm("theme"))
	jsonMsg(c, I18nWeb(c, "pages.settings.toasts.saved"), err)
}

func (a *SettingController) setTrustScanPoints(c *gin.Context) {
	err := a.settingService.SetTrustScanPoints(c.PostForm("trust") == "true")
	jsonMsg(c, I18nWeb(c, "pages.settings.toasts.saved"), err)
}
