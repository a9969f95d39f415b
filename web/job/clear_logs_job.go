package job

import (
	"os"
	"path/filepath"

	"github.com/scan2earn/panel/config"
	"github.com/scan2earn/panel/logger"
)

// ClearLogsJob truncates the panel log file so it never grows unbounded.
type ClearLogsJob struct{}

// NewClearLogsJob creates a new log cleanup job instance.
func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run truncates the log file in place.
func (j *ClearLogsJob) Run() {
	logPath := filepath.Join(config.GetLogFolder(), "scan2earn.log")
	if err := os.Truncate(logPath, 0); err != nil && !os.IsNotExist(err) {
		logger.Warning("clear logs job err:", err)
	}
}
