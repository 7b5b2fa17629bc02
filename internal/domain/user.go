package domain

import "slices"

// RoleAdministrator always has access to site notes
const RoleAdministrator = "administrator"

// User is an authenticated actor
type User struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// IsZero reports whether u is the anonymous user
func (u User) IsZero() bool {
	return u.ID == 0
}

// HasRole reports whether u holds role
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Settings is the plugin configuration read by the service
type Settings struct {
	AllowedRoles           []string `json:"allowed_roles"`
	AutoScreenshot         bool     `json:"auto_screenshot"`
	EnableFrontendComments bool     `json:"enable_frontend_comments"`
	ScreenshotQuality      float64  `json:"screenshot_quality"`
}

// DefaultSettings returns the settings used before anything was saved
func DefaultSettings() Settings {
	return Settings{
		AllowedRoles:           []string{RoleAdministrator, "editor"},
		AutoScreenshot:         true,
		EnableFrontendComments: true,
		ScreenshotQuality:      0.8,
	}
}

// Normalize guarantees administrator is allowed and clamps the screenshot quality
func (s Settings) Normalize() Settings {
	if !slices.Contains(s.AllowedRoles, RoleAdministrator) {
		s.AllowedRoles = append(slices.Clone(s.AllowedRoles), RoleAdministrator)
	}
	if s.ScreenshotQuality == 0 {
		s.ScreenshotQuality = 0.8
	}
	return s
}

// Validate checks setting ranges
func (s Settings) Validate() error {
	if s.ScreenshotQuality < 0.1 || s.ScreenshotQuality > 1.0 {
		return NewValidationError("screenshot_quality", "must be between 0.1 and 1.0")
	}
	return nil
}
