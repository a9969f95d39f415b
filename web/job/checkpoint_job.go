package job

import (
	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/logger"
)

// CheckpointJob flushes the SQLite write-ahead log back into the main
// database file. It is a no-op on PostgreSQL.
type CheckpointJob struct{}

// NewCheckpointJob creates a new checkpoint job instance.
func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run performs the WAL checkpoint.
func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
