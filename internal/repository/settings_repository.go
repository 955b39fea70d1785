package repository

import (
	"context"
	"time"

	"edumanager/internal/models"

	"github.com/jmoiron/sqlx"
)

const settingsRowID = 1

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored settings or the defaults when none were saved.
func (r *SettingsRepository) Get(ctx context.Context) (*models.SchoolSettings, error) {
	var settings models.SchoolSettings
	err := r.db.GetContext(ctx, &settings,
		"SELECT name, COALESCE(logo, '') AS logo FROM school_settings WHERE id = ? LIMIT 1", settingsRowID)
	if err != nil {
		if notFound(err) == ErrNotFound {
			defaults := models.DefaultSchoolSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *models.SchoolSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO school_settings (id, name, logo, updated_at) VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE name = VALUES(name), logo = VALUES(logo), updated_at = VALUES(updated_at)`,
		settingsRowID, settings.Name, settings.Logo, time.Now().UTC())
	return err
}
