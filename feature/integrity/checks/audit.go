package checks

import (
	"fmt"

	"site-settings/core/database"

	"gorm.io/gorm"
)

// CheckAudit verifies that the audit table has every column the recorder writes.
func CheckAudit(db *gorm.DB) ([]Issue, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingAuditColumns(db)
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(missing))
	for _, col := range missing {
		issues = append(issues, Issue{Problem: ProblemMissingColumn, File: col, Detail: database.AuditEntry{}.TableName()})
	}
	return issues, nil
}
