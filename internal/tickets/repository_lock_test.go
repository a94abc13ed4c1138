package tickets

import (
	"testing"

	"streakconnect/internal/lives"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL through the postgres dialector without connecting.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=streakconnect dbname=streakconnect",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// The capacity check is only sound if the live row is actually locked for
// the duration of the transaction.
func TestRowLockEmitsForUpdate(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Clauses(rowLock).
		Where("id = ?", uuid.New()).
		Find(&lives.Live{}).Statement

	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}
