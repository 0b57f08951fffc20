//go:build cgo

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for the mattn SQLite
// driver.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLite does not report the
// constraint name; for unique violations the message
// ("UNIQUE constraint failed: users.aadhar_card_number") is returned instead.
func (c *SQLiteErrorClassifier) Classify(err error) (ErrorClassification, string) {
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) {
		return Unclassified, ""
	}

	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation, liteErr.Error()
	}

	switch liteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable, ""
	}

	return Unclassified, ""
}
