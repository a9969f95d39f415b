package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scan2earn/panel/web/service"
)

// ServerController exposes host status and logs to admins.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")

	g.GET("/status", a.status)
	g.GET("/logs", a.getLogs)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil {
		count = 100
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, a.serverService.GetLogs(count, level), nil)
}
