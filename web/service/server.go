package service

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/scan2earn/panel/config"
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/web/global"
)

// Status is the host and application snapshot shown on the dashboard.
type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	Uptime  uint64    `json:"uptime"`
	Loads   []float64 `json:"loads"`
	Jobs    int       `json:"jobs"`
	Version string    `json:"version"`
	Scans   uint64    `json:"scans"`
}

// ServerService collects host status for the dashboard.
type ServerService struct{}

func (s *ServerService) GetStatus() *Status {
	now := time.Now()
	status := &Status{
		T:       now,
		Version: config.GetVersion(),
		Scans:   ScansSinceStart.Load(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	cores, err := cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu counts failed:", err)
	} else {
		status.CpuCores = cores
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	diskInfo, err := disk.Usage("/")
	if err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	if server := global.GetWebServer(); server != nil {
		if scheduler := server.GetCron(); scheduler != nil {
			status.Jobs = len(scheduler.Entries())
		}
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	return status
}

// GetLogs returns the most recent in-memory log lines at the given
// level.
func (s *ServerService) GetLogs(count int, level string) []string {
	return logger.GetLogs(count, level)
}
