package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOption implements OptionsStore.GetOption
func (r *SQLiteRepository) GetOption(ctx context.Context, name string, dest any) (bool, error) {
	var model OptionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storageError("failed to read option "+name, err)
	}

	if err := json.Unmarshal([]byte(model.Value), dest); err != nil {
		return true, storageError("failed to decode option "+name, err)
	}
	return true, nil
}

// SetOption implements OptionsStore.SetOption
func (r *SQLiteRepository) SetOption(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode option %s: %w", name, err)
	}

	model := OptionModel{Name: name, Value: string(data)}
	err = withRetry(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&model).Error
	}, 3)
	if err != nil {
		return storageError("failed to write option "+name, err)
	}
	return nil
}

// DeleteOptions implements OptionsStore.DeleteOptions
func (r *SQLiteRepository) DeleteOptions(ctx context.Context) error {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&OptionModel{}).Error
	}, 3)
	if err != nil {
		return storageError("failed to delete options", err)
	}
	return nil
}
