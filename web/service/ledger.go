package service

import (
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/atomic"
	"gorm.io/gorm"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/logger"
)

// ScanPayload is the JSON document encoded in a bin's QR code.
type ScanPayload struct {
	BinCode  string `json:"binCode"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
	Location string `json:"location"`
}

// ScanResult is what a successful scan returns to the client.
type ScanResult struct {
	Transaction *model.Transaction `json:"transaction"`
	TotalPoints int                `json:"totalPoints"`
}

// LedgerStats summarizes the ledger and registry for the dashboard.
type LedgerStats struct {
	TotalScans    int64            `json:"totalScans"`
	TotalPoints   int64            `json:"totalPoints"`
	TotalUsers    int64            `json:"totalUsers"`
	ActiveUsers   int64            `json:"activeUsers"`
	ActiveBins    int64            `json:"activeBins"`
	TypeBreakdown map[string]int64 `json:"typeBreakdown"`
}

// DayCount is one bucket of the daily scan histogram.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ScansSinceStart counts scans recorded by this process.
var ScansSinceStart = atomic.NewUint64(0)

// LedgerService owns the append-only transaction ledger. A user's point
// balance always equals the sum of their transactions; scans for the
// same user are serialized to keep the two in step.
type LedgerService struct {
	settingService SettingService

	userLocks sync.Map // userId -> *sync.Mutex
}

func (s *LedgerService) lockUser(userId int) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userId, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu
}

// DecodeScanPayload parses the QR payload. A payload that fails to parse
// degrades to a general scan worth the base award instead of failing.
func (s *LedgerService) DecodeScanPayload(raw string) (*ScanPayload, error) {
	payload := &ScanPayload{}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		logger.Debug("malformed scan payload:", err)
		return &ScanPayload{
			Type:   string(model.General),
			Points: model.General.Points(),
		}, ErrMalformedScanPayload
	}
	return payload, nil
}

// RecordScan appends a transaction and credits the user atomically. The
// award comes from the bin type table; the payload's own points value is
// honored only when the trustScanPoints setting is on.
func (s *LedgerService) RecordScan(userId int, payload *ScanPayload) (*ScanResult, error) {
	binType := model.BinType(strings.ToLower(payload.Type))
	if !binType.Valid() {
		binType = model.General
	}
	points := binType.Points()

	trust, err := s.settingService.GetTrustScanPoints()
	if err != nil {
		return nil, err
	}
	if trust && payload.Points > 0 {
		points = payload.Points
	}

	mu := s.lockUser(userId)
	defer mu.Unlock()

	tx := &model.Transaction{
		UserId:    userId,
		BinCode:   payload.BinCode,
		Type:      binType,
		Points:    points,
		Timestamp: time.Now(),
	}

	db := database.GetDB()
	err = db.Transaction(func(dbTx *gorm.DB) error {
		if err := dbTx.Create(tx).Error; err != nil {
			return err
		}
		return dbTx.Model(model.User{}).
			Where("id = ?", userId).
			Update("points", gorm.Expr("points + ?", points)).Error
	})
	if err != nil {
		return nil, err
	}
	ScansSinceStart.Inc()

	user := &model.User{}
	if err := db.Model(model.User{}).First(user, userId).Error; err != nil {
		return nil, err
	}
	return &ScanResult{Transaction: tx, TotalPoints: user.Points}, nil
}

// AdjustBalance moves a user's balance to target by appending an
// adjustment transaction for the delta. Grants made this way keep the
// balance equal to the ledger sum, so the nightly audit leaves them
// alone.
func (s *LedgerService) AdjustBalance(userId, target int) error {
	if target < 0 {
		target = 0
	}

	mu := s.lockUser(userId)
	defer mu.Unlock()

	db := database.GetDB()
	user := &model.User{}
	if err := db.Model(model.User{}).First(user, userId).Error; err != nil {
		return err
	}
	delta := target - user.Points
	if delta == 0 {
		return nil
	}

	tx := &model.Transaction{
		UserId:    userId,
		Type:      model.Adjustment,
		Points:    delta,
		Timestamp: time.Now(),
	}
	return db.Transaction(func(dbTx *gorm.DB) error {
		if err := dbTx.Create(tx).Error; err != nil {
			return err
		}
		return dbTx.Model(model.User{}).
			Where("id = ?", userId).
			Update("points", gorm.Expr("points + ?", delta)).Error
	})
}

// RecordScanForBin is the manual entry path: the bin is looked up by
// code and its registered type drives the award.
func (s *LedgerService) RecordScanForBin(userId int, binCode string) (*ScanResult, error) {
	binService := BinService{}
	bin, err := binService.Lookup(binCode)
	if err != nil {
		return nil, err
	}
	return s.RecordScan(userId, &ScanPayload{
		BinCode:  bin.Code,
		Type:     string(bin.Type),
		Location: bin.Location,
	})
}

// ListForUser returns a user's transactions, newest first.
func (s *LedgerService) ListForUser(userId int) ([]model.Transaction, error) {
	db := database.GetDB()
	var txs []model.Transaction
	err := db.Model(model.Transaction{}).
		Where("user_id = ?", userId).
		Order("timestamp DESC").
		Find(&txs).Error
	return txs, err
}

// periodStart maps a named filter to its cutoff. The zero time means no
// cutoff.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// ListAll returns transactions across all users, optionally restricted
// to one user and a period of today, week, month, year or all.
func (s *LedgerService) ListAll(period string, userId int) ([]model.Transaction, error) {
	db := database.GetDB().Model(model.Transaction{})
	if start := periodStart(period, time.Now()); !start.IsZero() {
		db = db.Where("timestamp >= ?", start)
	}
	if userId > 0 {
		db = db.Where("user_id = ?", userId)
	}
	var txs []model.Transaction
	err := db.Order("timestamp DESC").Find(&txs).Error
	return txs, err
}

// Stats aggregates the ledger for the dashboard. Scan counts, point
// sums, active users and the type breakdown honor the period filter;
// the user and bin totals stay global.
func (s *LedgerService) Stats(period string) (*LedgerStats, error) {
	db := database.GetDB()
	start := periodStart(period, time.Now())
	ledger := func() *gorm.DB {
		q := db.Model(model.Transaction{})
		if !start.IsZero() {
			q = q.Where("timestamp >= ?", start)
		}
		return q
	}

	stats := &LedgerStats{TypeBreakdown: map[string]int64{}}

	if err := ledger().Count(&stats.TotalScans).Error; err != nil {
		return nil, err
	}
	row := ledger().Select("COALESCE(SUM(points), 0)").Row()
	if err := row.Scan(&stats.TotalPoints); err != nil {
		return nil, err
	}
	if err := ledger().
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(model.Bin{}).
		Where("active = ?", true).
		Count(&stats.ActiveBins).Error; err != nil {
		return nil, err
	}

	type typeCount struct {
		Type  string
		Count int64
	}
	var counts []typeCount
	if err := ledger().
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.TypeBreakdown[c.Type] = c.Count
	}
	return stats, nil
}

// DailyHistogram counts scans per day over the last n days, oldest
// bucket first. Days without scans appear with a zero count.
func (s *LedgerService) DailyHistogram(days int) ([]DayCount, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	var txs []model.Transaction
	err := database.GetDB().Model(model.Transaction{}).
		Where("timestamp >= ?", start).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]int64{}
	for _, tx := range txs {
		byDay[tx.Timestamp.Format("2006-01-02")]++
	}
	buckets := make([]DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets = append(buckets, DayCount{Day: day, Count: byDay[day]})
	}
	return buckets, nil
}

// Audit verifies every user's balance equals the sum of their
// transactions, repairing drift in favor of the ledger.
func (s *LedgerService) Audit() (int, error) {
	db := database.GetDB()
	var users []model.User
	if err := db.Model(model.User{}).Find(&users).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, user := range users {
		mu := s.lockUser(user.Id)
		var sum int64
		row := db.Model(model.Transaction{}).
			Where("user_id = ?", user.Id).
			Select("COALESCE(SUM(points), 0)").Row()
		err := row.Scan(&sum)
		if err != nil {
			mu.Unlock()
			return repaired, err
		}
		if int(sum) != user.Points {
			logger.Warningf("ledger drift for user %d: balance %d, ledger %d", user.Id, user.Points, sum)
			err = db.Model(model.User{}).
				Where("id = ?", user.Id).
				Update("points", sum).Error
			if err != nil {
				mu.Unlock()
				return repaired, err
			}
			repaired++
		}
		mu.Unlock()
	}
	return repaired, nil
}
