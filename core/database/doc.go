// Package database handles the optional audit database.
//
// It wraps GORM (Go Object Relational Mapping) to configure a MySQL connection from
// the application's configuration and stores one row per configuration lifecycle
// operation (create, save, copy, delete) in the `config_audit` table.
//
// The filesystem stays the source of truth for configuration; the audit table is a
// side record. When the database is disabled or unreachable the application runs
// without it.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list so the integrity feature can report an
// audit table that drifted from the AuditEntry model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Audit database unavailable", zap.Error(err))
//	}
//	store := database.NewAuditStore(db)
//	_ = store.Migrate()
package database
