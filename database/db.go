package database

import (
	"log"

	"github.com/scan2earn/panel/config"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/util/crypto"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db    *gorm.DB
	dbCfg *config.DatabaseConfig
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@scan2earn.local"
	defaultAdminPassword = "Admin@123"
	defaultAdminFullName = "Administrator"
)

// defaultBins match the codes installed by the seed command. Kept here so
// a fresh database always has something scannable.
var defaultBins = []model.Bin{
	{Code: "GEN-001", Type: model.General, Location: "Building A, floor 1", Active: true},
	{Code: "GEN-002", Type: model.General, Location: "Parking lot", Active: true},
	{Code: "REC-001", Type: model.Recycle, Location: "Cafeteria", Active: true},
	{Code: "HAZ-001", Type: model.Hazardous, Location: "Building B, floor 1", Active: true},
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Transaction{},
		&model.Bin{},
		&model.QRCode{},
		&model.Setting{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUser seeds the main admin (id 1) into an empty users table.
func initUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	hash, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Id:           model.MainAdminId,
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		FullName:     defaultAdminFullName,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	return db.Create(user).Error
}

// SeedBins installs the default bins into an empty bins table.
func SeedBins() error {
	empty, err := isTableEmpty("bins")
	if err != nil || !empty {
		return err
	}
	return db.Create(&defaultBins).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens the configured backend (local SQLite file or networked
// PostgreSQL), migrates the schema and seeds the main admin.
func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var err error
	if cfg.IsPostgreSQL() {
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), c)
	} else {
		dsn := cfg.GetDSN() + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
		db, err = gorm.Open(sqlite.Open(dsn), c)
	}
	if err != nil {
		return err
	}
	dbCfg = cfg

	if cfg.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		for _, pragma := range []string{
			"PRAGMA cache_size = -64000;",
			"PRAGMA temp_store = MEMORY;",
			"PRAGMA foreign_keys = ON;",
		} {
			if _, err = sqlDB.Exec(pragma); err != nil {
				return err
			}
		}
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUser()
}

// InitSQLiteDB opens a plain SQLite database at dbPath. Used by the CLI
// and tests.
func InitSQLiteDB(dbPath string) error {
	return InitDB(&config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: dbPath},
	})
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

// UsingSQLite reports whether the open backend is SQLite.
func UsingSQLite() bool {
	return dbCfg == nil || dbCfg.IsSQLite()
}

// Checkpoint flushes the SQLite WAL. No-op for other backends.
func Checkpoint() error {
	if dbCfg != nil && !dbCfg.IsSQLite() {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
