package services

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// SettingsService handles the plugin settings (front-end toggle, roles, screenshots)
type SettingsService struct {
	cache   *gocache.Cache
	options ports.OptionsStore
}

// Verify interface compliance at compile time
var _ ports.SettingsReader = (*SettingsService)(nil)

// NewSettingsService creates a new SettingsService
func NewSettingsService(options ports.OptionsStore, cache *gocache.Cache) *SettingsService {
	return &SettingsService{
		cache:   cache,
		options: options,
	}
}

// LoadSettings implements ports.SettingsReader. Defaults apply until settings are saved.
func (s *SettingsService) LoadSettings(ctx context.Context) (domain.Settings, error) {
	if cached, ok := s.cache.Get(OptionSettings); ok {
		return cached.(domain.Settings), nil
	}

	settings := domain.DefaultSettings()
	if _, err := s.options.GetOption(ctx, OptionSettings, &settings); err != nil {
		logging.Logger.Error("Failed to load settings", "error", err)
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	settings = settings.Normalize()

	s.cache.Set(OptionSettings, settings, gocache.NoExpiration)
	return settings, nil
}

// SaveSettings validates and stores settings, returning what was stored
func (s *SettingsService) SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}

	logging.Logger.Info("Saving settings",
		"frontendComments", settings.EnableFrontendComments,
		"allowedRoles", settings.AllowedRoles,
		"autoScreenshot", settings.AutoScreenshot,
		"screenshotQuality", settings.ScreenshotQuality)

	if err := s.options.SetOption(ctx, OptionSettings, settings); err != nil {
		logging.Logger.Error("Failed to save settings", "error", err)
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.cache.Set(OptionSettings, settings, gocache.NoExpiration)
	logging.Logger.Info("Settings saved successfully")
	return settings, nil
}

// Reset deletes every stored option and empties the cache
func (s *SettingsService) Reset(ctx context.Context) error {
	if err := s.options.DeleteOptions(ctx); err != nil {
		return fmt.Errorf("failed to delete options: %w", err)
	}
	s.cache.Flush()
	return nil
}
