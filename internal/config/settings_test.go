package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SITENOTES_HOME", t.TempDir())

	s, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, DefaultDriver, s.ResolvedDriver())
	assert.Equal(t, DefaultListenAddr, s.ResolvedListenAddr())
	assert.Equal(t, DefaultTablePrefix, s.ResolvedTablePrefix())
	assert.Equal(t, DefaultNonceTTL, s.ResolvedNonceTTL())
	assert.Equal(t, uint(1), s.ResolvedCLIUserID())
	assert.Equal(t, filepath.Join(GetHome(), "sitenotes.db"), s.ResolvedDBPath())
}

func TestLoadSettings_ParsesUsersAndRoles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SITENOTES_HOME", home)
	content := `{
		"driver": "sqlite",
		"table_prefix": "",
		"nonce_ttl_minutes": 30,
		"users": [
			{"id": 1, "name": "Ada", "roles": ["administrator"], "token": "t1"},
			{"id": 2, "name": "Eve", "roles": "editor, author", "token": "t2"}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte(content), 0644))

	s, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, "sqlite", s.ResolvedDriver())
	assert.Equal(t, "", s.ResolvedTablePrefix(), "explicit empty prefix must be kept")
	assert.Equal(t, 30*time.Minute, s.ResolvedNonceTTL())
	require.Len(t, s.Users, 2)
	assert.Equal(t, StringArray{"editor", "author"}, s.Users[1].Roles)
}

func TestLoadSettings_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{`},
		{"unknown driver", `{"driver": "postgres"}`},
		{"duplicate user id", `{"users": [{"id": 1, "token": "a"}, {"id": 1, "token": "b"}]}`},
		{"shared token", `{"users": [{"id": 1, "token": "a"}, {"id": 2, "token": "a"}]}`},
		{"missing id", `{"users": [{"name": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettingsFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	t.Setenv("SITENOTES_HOME", filepath.Join(t.TempDir(), "fresh"))
	addr := "0.0.0.0:9000"

	require.NoError(t, SaveSettings(&Settings{ListenAddr: addr}))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, addr, s.ResolvedListenAddr())
}

func TestParseCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{}, ParseCommaSeparated(""))
	assert.Equal(t, []string{"a", "b"}, ParseCommaSeparated(" a, ,b "))
}

func TestGetSettingsExample(t *testing.T) {
	example := GetSettingsExample()

	assert.Equal(t, DefaultDriver, example["driver"])
	assert.Equal(t, DefaultSSHAddr, example["ssh_addr"])
	assert.Equal(t, "~/.ssh/authorized_keys", example["authorized_keys"])
	assert.Equal(t, true, example["debug"])
	assert.Equal(t, []string{"https://www.example.com"}, example["allowed_origins"])
	assert.Contains(t, example, "users")
	assert.Len(t, example, reflect.TypeOf(Settings{}).NumField())
}

func TestResolvedAuthorizedKeysPath(t *testing.T) {
	s := &Settings{AuthorizedKeys: "/etc/sitenotes/keys"}
	assert.Equal(t, "/etc/sitenotes/keys", s.ResolvedAuthorizedKeysPath())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ssh", "authorized_keys"), (&Settings{}).ResolvedAuthorizedKeysPath())
}
