package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Server", "VARCHAR(255)", "YES", "MUL", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `config_audit`").WillReturnRows(rows)

	cols, err := GetTableColumns(db, "config_audit")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Field)
	assert.Equal(t, "bigint unsigned", cols[0].Type)
	assert.Equal(t, "server", cols[1].Field)
}

func TestMissingAuditColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint", "NO", "PRI", nil, "").
		AddRow("operation", "varchar(16)", "YES", "", nil, "").
		AddRow("server", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `config_audit`").WillReturnRows(rows)

	missing, err := MissingAuditColumns(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"target", "file", "created_at"}, missing)
}

func TestGetTableColumns_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)

	_, err := GetTableColumns(db, "config_audit")
	assert.Error(t, err)
}
