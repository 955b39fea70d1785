package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EduManager", cfg.AppName)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, 2*time.Hour, cfg.GridSessionTTL)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USERNAME", "edu")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DATABASE", "school")
	t.Setenv("GRID_SESSION_TTL", "15m")
	t.Setenv("STORAGE_BUCKET", "originals")
	t.Setenv("STORAGE_USE_PATH_STYLE", "true")
	t.Setenv("UPLOAD_MAX_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "edu:secret@tcp(db.internal:3306)/school?parseTime=true&loc=UTC&clientFoundRows=true", cfg.GetDSN())
	assert.Equal(t, 15*time.Minute, cfg.GridSessionTTL)
	assert.True(t, cfg.StorageEnabled())
	assert.True(t, cfg.StorageUsePathStyle)
	assert.Equal(t, 20971520, cfg.UploadMaxSize)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
