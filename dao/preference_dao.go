// dao/preference_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sail_errors "github.com/sapictureday/sail/errors"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

var preferenceConflictTarget = []clause.Column{{Name: "user_id"}, {Name: "workspace_id"}}

type PreferenceDAO struct {
	DB *gorm.DB
}

func NewPreferenceDAO(db *gorm.DB) *PreferenceDAO {
	return &PreferenceDAO{DB: db}
}

// GetPrimary returns the user's enabled primary preference, or nil when none
// exists. The clear-and-set write path keeps the primary unique per user; if
// two rows ever carry the flag anyway, the most recently updated one wins.
func (dao *PreferenceDAO) GetPrimary(ctx context.Context, userID string) (*model.WorkspacePreference, error) {
	var pref model.WorkspacePreference
	err := dao.DB.WithContext(ctx).
		Where("user_id = ? AND is_primary = ? AND is_enabled = ?", userID, true, true).
		Order("updated_at DESC").
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return &pref, nil
}

func (dao *PreferenceDAO) ListDisabledWorkspaceIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := dao.DB.WithContext(ctx).
		Model(&model.WorkspacePreference{}).
		Where("user_id = ? AND is_enabled = ?", userID, false).
		Pluck("workspace_id", &ids).Error
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return ids, nil
}

func (dao *PreferenceDAO) ListPreferences(ctx context.Context, userID string) ([]*model.WorkspacePreference, error) {
	var prefs []*model.WorkspacePreference
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&prefs).Error
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return prefs, nil
}

// SetPrimary clears any existing primary for the user and upserts the new one
// inside a single transaction, so an interruption can never leave the user
// with zero or two primaries.
func (dao *PreferenceDAO) SetPrimary(ctx context.Context, userID, workspaceID string) error {
	start := time.Now()

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WorkspacePreference{}).
			Where("user_id = ? AND is_primary = ?", userID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		pref := model.WorkspacePreference{
			ID:          uuid.New().String(),
			UserID:      userID,
			WorkspaceID: workspaceID,
			IsEnabled:   true,
			IsPrimary:   true,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: preferenceConflictTarget,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_primary": true,
				"is_enabled": true,
				"updated_at": time.Now(),
			}),
		}).Create(&pref).Error
	})
	if err != nil {
		logger.Error("Failed to set primary preference",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("workspaceID", workspaceID),
			zap.Duration("duration", time.Since(start)))
		return sail_errors.ErrDatabaseOperation
	}

	logger.Info("Primary preference set",
		zap.String("userID", userID),
		zap.String("workspaceID", workspaceID),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// SetEnabled upserts the enabled flag for one (user, workspace) pair. A row
// created this way is never primary.
func (dao *PreferenceDAO) SetEnabled(ctx context.Context, userID, workspaceID string, enabled bool) error {
	pref := model.WorkspacePreference{
		ID:          uuid.New().String(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		IsEnabled:   enabled,
		IsPrimary:   false,
	}
	assignments := map[string]interface{}{
		"is_enabled": enabled,
		"updated_at": time.Now(),
	}
	if !enabled {
		// A disabled workspace cannot stay primary.
		assignments["is_primary"] = false
	}

	err := dao.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   preferenceConflictTarget,
		DoUpdates: clause.Assignments(assignments),
	}).Create(&pref).Error
	if err != nil {
		logger.Error("Failed to update preference",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("workspaceID", workspaceID))
		return sail_errors.ErrDatabaseOperation
	}
	return nil
}
