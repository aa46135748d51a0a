package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateErr reports whether err is a unique-constraint violation. The
// driver translation catches most cases; the string checks cover dialects
// that do not translate.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
