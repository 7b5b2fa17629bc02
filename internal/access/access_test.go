package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sitenotes/sitenotes/internal/domain"
	portsmocks "github.com/sitenotes/sitenotes/internal/ports/mocks"
)

func TestRolePolicy_HasAccess(t *testing.T) {
	tests := []struct {
		name         string
		user         domain.User
		allowedRoles []string
		loadErr      error
		expectLoad   bool
		want         bool
	}{
		{
			name: "zero user never passes",
			user: domain.User{Roles: []string{domain.RoleAdministrator}},
			want: false,
		},
		{
			name: "administrator always passes",
			user: domain.User{ID: 1, Roles: []string{domain.RoleAdministrator}},
			want: true,
		},
		{
			name:         "allowed role",
			user:         domain.User{ID: 2, Roles: []string{"editor"}},
			allowedRoles: []string{"editor"},
			expectLoad:   true,
			want:         true,
		},
		{
			name:         "role not allowed",
			user:         domain.User{ID: 3, Roles: []string{"subscriber"}},
			allowedRoles: []string{"editor"},
			expectLoad:   true,
			want:         false,
		},
		{
			name:         "editor removed from allowed roles",
			user:         domain.User{ID: 2, Roles: []string{"editor"}},
			allowedRoles: []string{},
			expectLoad:   true,
			want:         false,
		},
		{
			name:       "settings failure falls back to defaults",
			user:       domain.User{ID: 2, Roles: []string{"editor"}},
			loadErr:    errors.New("disk gone"),
			expectLoad: true,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := portsmocks.NewMockSettingsReader(t)
			if tt.expectLoad {
				settings.EXPECT().LoadSettings(mock.Anything).
					Return(domain.Settings{AllowedRoles: tt.allowedRoles, ScreenshotQuality: 0.8}, tt.loadErr)
			}

			policy := NewRolePolicy(settings)

			assert.Equal(t, tt.want, policy.HasAccess(context.Background(), tt.user))
		})
	}
}

func TestStaticDirectory(t *testing.T) {
	dir := NewStaticDirectory([]Account{
		{Token: "tok-editor", User: domain.User{ID: 2, Name: "Eddie", Roles: []string{"editor"}}},
		{Token: "tok-admin", User: domain.User{ID: 1, Name: "Ada", Roles: []string{domain.RoleAdministrator}}},
		{User: domain.User{ID: 3, Name: "No token"}},
	})

	user, ok := dir.ByToken("tok-admin")
	assert.True(t, ok)
	assert.Equal(t, uint(1), user.ID)

	_, ok = dir.ByToken("")
	assert.False(t, ok, "an empty token must not match a user without token")

	_, ok = dir.ByToken("nope")
	assert.False(t, ok)

	user, ok = dir.ByID(2)
	assert.True(t, ok)
	assert.Equal(t, "Eddie", user.Name)

	user, ok = dir.ByName("eddie")
	assert.True(t, ok)
	assert.Equal(t, uint(2), user.ID)

	_, ok = dir.ByName("")
	assert.False(t, ok)

	_, ok = dir.ByName("mallory")
	assert.False(t, ok)

	users := dir.List()
	assert.Len(t, users, 3)
	assert.Equal(t, uint(1), users[0].ID)
}
