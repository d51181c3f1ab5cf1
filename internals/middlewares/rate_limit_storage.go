package middlewares

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateLimitCounter menyimpan state limiter di DB supaya dipakai bersama semua instance.
type RateLimitCounter struct {
	RateLimitKey       string     `gorm:"column:rate_limit_key;primaryKey;size:255" json:"rate_limit_key"`
	RateLimitValue     []byte     `gorm:"column:rate_limit_value" json:"-"`
	RateLimitExpiresAt *time.Time `gorm:"column:rate_limit_expires_at;index" json:"rate_limit_expires_at"`
}

func (RateLimitCounter) TableName() string { return "rate_limit_counters" }

// GormStorage implements fiber.Storage on top of rate_limit_counters.
type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db, now: time.Now}
}

func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var row RateLimitCounter
	err := s.db.Where("rate_limit_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if row.RateLimitExpiresAt != nil && !row.RateLimitExpiresAt.After(s.now()) {
		return nil, nil
	}
	return row.RateLimitValue, nil
}

func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	row := RateLimitCounter{RateLimitKey: key, RateLimitValue: val}
	if exp > 0 {
		t := s.now().Add(exp)
		row.RateLimitExpiresAt = &t
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rate_limit_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate_limit_value", "rate_limit_expires_at"}),
	}).Create(&row).Error
}

func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.db.Where("rate_limit_key = ?", key).Delete(&RateLimitCounter{}).Error
}

func (s *GormStorage) Reset() error {
	return s.db.Where("1 = 1").Delete(&RateLimitCounter{}).Error
}

// PurgeExpired dipanggil periodik dari main.
func (s *GormStorage) PurgeExpired() (int64, error) {
	res := s.db.Where("rate_limit_expires_at IS NOT NULL AND rate_limit_expires_at <= ?", s.now()).
		Delete(&RateLimitCounter{})
	return res.RowsAffected, res.Error
}

// Close is a no-op; the *gorm.DB is owned by main.
func (s *GormStorage) Close() error { return nil }
