package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Audit operations.
const (
	OpCreate = "create"
	OpSave   = "save"
	OpCopy   = "copy"
	OpDelete = "delete"
)

// AuditEntry is one recorded lifecycle operation.
type AuditEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Operation string    `gorm:"column:operation;type:varchar(16);index" json:"operation"`
	Server    string    `gorm:"column:server;type:varchar(255);index" json:"server"`
	Target    string    `gorm:"column:target;type:varchar(255)" json:"target,omitempty"`
	File      string    `gorm:"column:file;type:varchar(1024)" json:"file,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
}

// TableName sets the audit table name.
func (AuditEntry) TableName() string {
	return "config_audit"
}

// Recorder stores audit entries.
type Recorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditStore records lifecycle operations with GORM.
type AuditStore struct {
	db *gorm.DB
}

// NewAuditStore creates a store on an open connection.
func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Migrate creates or updates the audit table.
func (s *AuditStore) Migrate() error {
	if err := s.db.AutoMigrate(&AuditEntry{}); err != nil {
		return fmt.Errorf("failed to migrate audit table: %w", err)
	}
	return nil
}

// Record inserts one entry. A zero CreatedAt is set to now.
func (s *AuditStore) Record(ctx context.Context, entry AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// List returns the newest entries for a server, at most limit of them.
func (s *AuditStore) List(ctx context.Context, server string, limit int) ([]AuditEntry, error) {
	var entries []AuditEntry
	q := s.db.WithContext(ctx).Where("server = ?", server).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
