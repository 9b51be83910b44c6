package pkg

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

// MapError converts GORM errors to domain errors. entity names the resource
// in NotFound messages. Errors that already are *domain.AppError pass through.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError(entity)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, entity+" already exists", err)
	}
	return domain.Internal("database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
