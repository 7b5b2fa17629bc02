// Package access holds the role-based access collaborator and the static
// user directory loaded from configuration.
package access

import (
	"context"
	"slices"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// RolePolicy grants access to administrators and to any role listed in the
// allowed_roles setting
type RolePolicy struct {
	settings ports.SettingsReader
}

// Verify interface compliance at compile time
var _ ports.AccessPolicy = (*RolePolicy)(nil)

// NewRolePolicy creates a new RolePolicy
func NewRolePolicy(settings ports.SettingsReader) *RolePolicy {
	return &RolePolicy{settings: settings}
}

// HasAccess implements ports.AccessPolicy
func (p *RolePolicy) HasAccess(ctx context.Context, user domain.User) bool {
	if user.IsZero() {
		return false
	}
	if user.HasRole(domain.RoleAdministrator) {
		return true
	}

	settings, err := p.settings.LoadSettings(ctx)
	if err != nil {
		// Fall back to the defaults rather than locking everyone out
		logging.Logger.Warn("Failed to load settings for access check, using defaults", "error", err)
		settings = domain.DefaultSettings()
	}
	settings = settings.Normalize()

	for _, role := range user.Roles {
		if slices.Contains(settings.AllowedRoles, role) {
			return true
		}
	}
	logging.Logger.Debug("Access denied", "user", user.ID, "roles", user.Roles)
	return false
}
