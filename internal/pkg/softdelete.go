package pkg

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

// Live is a GORM scope that excludes soft-deleted rows.
func Live(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// NotDeleted excludes soft-deleted rows unless the request opts into them.
func NotDeleted(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.IncludeDeleted {
			return db
		}
		return Live(db)
	}
}

// MarkDeleted soft-deletes the live row of T with the given id, stamping
// deleted_at and, when actor is set, updated_by. A missing or already
// deleted row yields a NotFound error for entity.
func MarkDeleted[T any](ctx context.Context, db *gorm.DB, entity string, id uint, actor *string) error {
	updates := map[string]any{"deleted_at": time.Now()}
	if actor != nil {
		updates["updated_by"] = *actor
	}

	result := db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Scopes(Live).
		Updates(updates)
	if result.Error != nil {
		return MapError(result.Error, entity)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError(entity)
	}
	return nil
}

// LiveValueTaken reports whether a live row of T other than excludeID already
// holds value in column. Pass excludeID 0 when creating.
func LiveValueTaken[T any](ctx context.Context, db *gorm.DB, column, value string, excludeID uint) (bool, error) {
	if !validFieldName.MatchString(column) {
		return false, domain.Internal("invalid column "+column, nil)
	}

	q := db.WithContext(ctx).Model(new(T)).
		Where(column+" = ?", value).
		Scopes(Live)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, MapError(err, "")
	}
	return count > 0, nil
}
