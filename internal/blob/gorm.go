package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one row of the blobs table.
type Record struct {
	Key       string    `gorm:"column:key;size:191;primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name regardless of naming strategy.
func (Record) TableName() string {
	return "blobs"
}

// Gorm keeps blobs in a SQL table through GORM.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm creates a GORM-backed blob store. Call Migrate before first use.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the blobs table.
func (g *Gorm) Migrate() error {
	if err := g.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("auto-migrate blobs: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (g *Gorm) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Record
	err := g.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load blob %s: %w", key, err)
	}
	return []byte(rec.Value), true, nil
}

// Set upserts the value stored under key.
func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	rec := Record{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save blob %s: %w", key, err)
	}
	return nil
}
