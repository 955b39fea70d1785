package service

import (
	"context"
	"strings"

	"edumanager/internal/models"
)

type SettingsService struct {
	settings SettingsStore
}

func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(ctx context.Context) (*models.SchoolSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, persistence("get school settings", err)
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, req models.SchoolSettings) (*models.SchoolSettings, error) {
	settings := &models.SchoolSettings{
		Name: strings.TrimSpace(req.Name),
		Logo: strings.TrimSpace(req.Logo),
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, persistence("save school settings", err)
	}
	return settings, nil
}
