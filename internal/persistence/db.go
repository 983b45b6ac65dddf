package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const (
	pgUniqueViolation = "23505"
	pgDuplicateTable  = "42P07"
)

type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}

// DB is a postgres backed core.KeyValueClient.
type DB struct {
	Logger *slog.Logger
	Config *config.Config

	db *gorm.DB
}

func (db *DB) Init(ctx context.Context) error {
	db.Logger = db.Logger.With("component", "persistence.DB")

	gormDB, err := gorm.Open(postgres.Open(db.Config.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	db.db = gormDB

	return db.migrate(ctx)
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}

func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := db.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrKeyNotFound
		}
		return nil, err
	}
	return entry.Value, nil
}

func (db *DB) Put(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}

	err := db.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

func (db *DB) Delete(ctx context.Context, key string) error {
	res := db.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return core.ErrKeyNotFound
	}
	return nil
}

func (db *DB) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := db.db.WithContext(ctx).Model(&Entry{}).Order("key").Pluck("key", &keys).Error
	return keys, err
}

// migrate creates the table. Replicas starting together race on CREATE TABLE, the loser's error
// is ignored.
func (db *DB) migrate(ctx context.Context) error {
	err := db.db.WithContext(ctx).AutoMigrate(&Entry{})
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgDuplicateTable) {
		db.Logger.Warn("kv table created concurrently", "code", pgErr.Code)
		return nil
	}
	return fmt.Errorf("migrate kv table: %w", err)
}
