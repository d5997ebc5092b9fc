package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// isDuplicateEntryError detects a unique-index violation. MySQL reports
// ER_DUP_ENTRY (1062); the string fallbacks cover the SQLite test dialect.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint failed")
}

// isRetryableLockError detects MySQL deadlock (1213) and lock wait timeout
// (1205), the two cases where re-running the booking transaction can win.
func isRetryableLockError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1213 || merr.Number == 1205
	}
	return false
}

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite (used by the tests) serializes writers on its own and rejects the
// clause, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
