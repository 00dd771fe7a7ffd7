package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleResult reports which way a toggle flipped.
type ToggleResult string

const (
	ToggleCreated ToggleResult = "created"
	ToggleDeleted ToggleResult = "deleted"
)

// toggle flips the existence of the join record matching pair. record is the
// row to insert when none exists. Relies on a unique index over the pair
// columns: when a concurrent toggle inserts the same pair first, our insert
// is a no-op and the pair is deleted instead, so two racing toggles still
// cancel out.
func toggle[T any](ctx context.Context, db *gorm.DB, pair map[string]interface{}, record *T) (ToggleResult, error) {
	var result ToggleResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where(pair).Delete(new(T))
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			result = ToggleDeleted
			return nil
		}

		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
		if ins.Error != nil {
			return ins.Error
		}
		if ins.RowsAffected > 0 {
			result = ToggleCreated
			return nil
		}

		if err := tx.Where(pair).Delete(new(T)).Error; err != nil {
			return err
		}
		result = ToggleDeleted
		return nil
	})
	return result, err
}
