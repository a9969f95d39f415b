package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
)

func createTestUser(t *testing.T, username string) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.CreateUser(username, username+"@example.com", "", "Abc12345!", "")
	assert.NoError(t, err)
	return user
}

func TestRecordScanDerivesPointsFromType(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner1")

	// the payload claims 999 points but the type table wins
	result, err := service.RecordScan(user.Id, &ScanPayload{
		BinCode: "REC-001",
		Type:    "recycle",
		Points:  999,
	})
	assert.NoError(t, err)
	assert.Equal(t, 20, result.Transaction.Points)
	assert.Equal(t, 20, result.TotalPoints)

	// unknown types degrade to the general award
	result, err = service.RecordScan(user.Id, &ScanPayload{
		BinCode: "XXX-001",
		Type:    "plutonium",
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Transaction.Points)
	assert.Equal(t, model.General, result.Transaction.Type)
	assert.Equal(t, 30, result.TotalPoints)
}

func TestRecordScanTrustedPoints(t *testing.T) {
	setup()
	defer teardown()

	settingService := SettingService{}
	assert.NoError(t, settingService.SetTrustScanPoints(true))

	service := LedgerService{}
	user := createTestUser(t, "scanner2")

	result, err := service.RecordScan(user.Id, &ScanPayload{
		BinCode: "GEN-001",
		Type:    "general",
		Points:  42,
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, result.Transaction.Points)
	assert.Equal(t, 42, result.TotalPoints)
}

func TestDecodeScanPayload(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}

	payload, err := service.DecodeScanPayload(`{"binCode":"HAZ-001","type":"hazardous","points":30,"location":"Building B"}`)
	assert.NoError(t, err)
	assert.Equal(t, "HAZ-001", payload.BinCode)
	assert.Equal(t, "hazardous", payload.Type)

	// malformed payloads degrade to a general scan instead of failing
	payload, err = service.DecodeScanPayload("not json at all")
	assert.ErrorIs(t, err, ErrMalformedScanPayload)
	assert.Equal(t, "general", payload.Type)
	assert.Equal(t, 10, payload.Points)
}

func TestBalanceEqualsLedgerSum(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner3")

	for _, binType := range []string{"general", "recycle", "hazardous"} {
		_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "X-1", Type: binType})
		assert.NoError(t, err)
	}

	userService := UserService{}
	refreshed, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 60, refreshed.Points)

	txs, err := service.ListForUser(user.Id)
	assert.NoError(t, err)
	assert.Len(t, txs, 3)
	sum := 0
	for _, tx := range txs {
		sum += tx.Points
	}
	assert.Equal(t, refreshed.Points, sum)
}

func TestConcurrentScansStayConsistent(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner4")

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "GEN-001", Type: "general"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	userService := UserService{}
	refreshed, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, n*10, refreshed.Points)
}

func TestListAllPeriodFilter(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner5")

	_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "GEN-001", Type: "general"})
	assert.NoError(t, err)

	// plant an old transaction directly
	old := &model.Transaction{
		UserId:    user.Id,
		BinCode:   "REC-001",
		Type:      "recycle",
		Points:    20,
		Timestamp: time.Now().AddDate(0, -2, 0),
	}
	assert.NoError(t, database.GetDB().Create(old).Error)

	txs, err := service.ListAll("all", 0)
	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, err = service.ListAll("today", 0)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)

	txs, err = service.ListAll("month", user.Id)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)

	txs, err = service.ListAll("year", 0)
	assert.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestAdjustBalanceSurvivesAudit(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner9")

	_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "GEN-001", Type: "general"})
	assert.NoError(t, err)

	// an admin grant lands in the ledger as an adjustment transaction
	assert.NoError(t, service.AdjustBalance(user.Id, 500))

	userService := UserService{}
	refreshed, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 500, refreshed.Points)

	txs, err := service.ListForUser(user.Id)
	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	sum := 0
	for _, tx := range txs {
		sum += tx.Points
	}
	assert.Equal(t, 500, sum)

	// the grant is ledger-backed, so the audit finds nothing to repair
	repaired, err := service.Audit()
	assert.NoError(t, err)
	assert.Equal(t, 0, repaired)

	refreshed, err = userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 500, refreshed.Points)

	// lowering the balance appends a negative delta
	assert.NoError(t, service.AdjustBalance(user.Id, 100))
	refreshed, err = userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 100, refreshed.Points)
}

func TestLedgerAuditRepairsDrift(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner6")

	_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "HAZ-001", Type: "hazardous"})
	assert.NoError(t, err)

	// corrupt the balance
	err = database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("points", 999).Error
	assert.NoError(t, err)

	repaired, err := service.Audit()
	assert.NoError(t, err)
	assert.Equal(t, 1, repaired)

	userService := UserService{}
	refreshed, err := userService.GetUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, 30, refreshed.Points)
}

func TestStats(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	u1 := createTestUser(t, "scanner7")
	u2 := createTestUser(t, "scanner8")

	_, err := service.RecordScan(u1.Id, &ScanPayload{BinCode: "GEN-001", Type: "general"})
	assert.NoError(t, err)
	_, err = service.RecordScan(u2.Id, &ScanPayload{BinCode: "REC-001", Type: "recycle"})
	assert.NoError(t, err)
	_, err = service.RecordScan(u2.Id, &ScanPayload{BinCode: "REC-001", Type: "recycle"})
	assert.NoError(t, err)

	stats, err := service.Stats("all")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalScans)
	assert.Equal(t, int64(50), stats.TotalPoints)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(3), stats.TotalUsers) // two scanners plus the seeded admin
	assert.Equal(t, int64(2), stats.TypeBreakdown["recycle"])

	buckets, err := service.DailyHistogram(7)
	assert.NoError(t, err)
	assert.Len(t, buckets, 7)
	assert.Equal(t, int64(3), buckets[6].Count)
}

func TestStatsPeriodFilter(t *testing.T) {
	setup()
	defer teardown()

	service := LedgerService{}
	user := createTestUser(t, "scanner10")
	assert.NoError(t, database.SeedBins())

	_, err := service.RecordScan(user.Id, &ScanPayload{BinCode: "GEN-001", Type: "general"})
	assert.NoError(t, err)

	// plant an old transaction directly
	old := &model.Transaction{
		UserId:    user.Id,
		BinCode:   "REC-001",
		Type:      model.Recycle,
		Points:    20,
		Timestamp: time.Now().AddDate(0, -2, 0),
	}
	assert.NoError(t, database.GetDB().Create(old).Error)

	stats, err := service.Stats("all")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalScans)
	assert.Equal(t, int64(30), stats.TotalPoints)
	assert.Equal(t, int64(1), stats.TypeBreakdown["recycle"])

	// the window drops the old scan from counts, sums and the breakdown
	stats, err = service.Stats("week")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalScans)
	assert.Equal(t, int64(10), stats.TotalPoints)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.Equal(t, int64(0), stats.TypeBreakdown["recycle"])

	// user and bin totals stay global
	assert.Equal(t, int64(2), stats.TotalUsers) // scanner plus the seeded admin
	assert.Equal(t, int64(4), stats.ActiveBins)
}
