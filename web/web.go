// Package web provides the scan2earn panel web server: HTTP serving,
// routing, sessions and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/scan2earn/panel/config"
	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/util/common"
	"github.com/scan2earn/panel/web/controller"
	"github.com/scan2earn/panel/web/job"
	"github.com/scan2earn/panel/web/locale"
	"github.com/scan2earn/panel/web/middleware"
	"github.com/scan2earn/panel/web/service"

	"github.com/scan2earn/panel/database/model"
)

//go:embed translation/*
var i18nFS embed.FS

// Server is the scan2earn web server with its controllers, services and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	scan    *controller.ScanController
	bin     *controller.BinController
	admin   *controller.AdminController
	setting *controller.SettingController
	server  *controller.ServerController
	api     *controller.APIController

	settingService service.SettingService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidator(webDomain))
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))

	secret, err := s.settingService.GetJwtSecret()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("scan2earn", store))
	engine.Use(locale.LocalizerMiddleware())

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)
	s.api = controller.NewAPIController(g)

	panel := g.Group("/panel", middleware.SessionAuth())
	s.scan = controller.NewScanController(panel)

	admin := panel.Group("/", middleware.RoleRequired(model.RoleAdmin))
	s.bin = controller.NewBinController(admin)
	s.admin = controller.NewAdminController(admin)
	s.setting = controller.NewSettingController(admin)
	s.server = controller.NewServerController(admin)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewLedgerAuditJob())
	s.cron.AddJob("@weekly", job.NewClearLogsJob())

	if database.UsingSQLite() {
		s.cron.AddJob("@every 10m", job.NewCheckpointJob())
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
