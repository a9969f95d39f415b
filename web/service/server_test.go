package service

import (
	"context"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"

	"github.com/scan2earn/panel/web/global"
)

type stubWebServer struct {
	cron *cron.Cron
}

func (s *stubWebServer) GetCron() *cron.Cron     { return s.cron }
func (s *stubWebServer) GetCtx() context.Context { return context.Background() }

func TestStatusReportsScheduledJobs(t *testing.T) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc("@daily", func() {})
	assert.NoError(t, err)
	_, err = scheduler.AddFunc("@weekly", func() {})
	assert.NoError(t, err)

	global.SetWebServer(&stubWebServer{cron: scheduler})
	defer global.SetWebServer(nil)

	service := ServerService{}
	status := service.GetStatus()
	assert.Equal(t, 2, status.Jobs)
	assert.NotEmpty(t, status.Version)
}
