package job

import (
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/web/service"
)

// LedgerAuditJob periodically verifies that every balance matches the
// sum of its transactions.
type LedgerAuditJob struct {
	ledgerService service.LedgerService
}

// NewLedgerAuditJob creates a new ledger audit job instance.
func NewLedgerAuditJob() *LedgerAuditJob {
	return new(LedgerAuditJob)
}

// Run audits the ledger and logs how many balances needed repair.
func (j *LedgerAuditJob) Run() {
	repaired, err := j.ledgerService.Audit()
	if err != nil {
		logger.Warning("ledger audit job err:", err)
		return
	}
	if repaired > 0 {
		logger.Warningf("ledger audit repaired %d balances", repaired)
	}
}
