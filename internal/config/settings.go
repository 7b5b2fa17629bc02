package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied when settings.json leaves a value unset
const (
	DefaultDriver      = "sqlite3"
	DefaultListenAddr  = "127.0.0.1:8787"
	DefaultMaxLogFiles = 5
	DefaultNonceTTL    = 12 * time.Hour
	DefaultSSHAddr     = "127.0.0.1:23234"
	DefaultTablePrefix = "wp_"
)

// Settings represents the structure of $SITENOTES_HOME/settings.json
type Settings struct {
	AllowedOrigins     StringArray  `json:"allowed_origins,omitempty"`
	AuthorizedKeys     string       `json:"authorized_keys,omitempty"`
	CLIUserID          *uint        `json:"cli_user_id,omitempty"`
	DBPath             string       `json:"db_path,omitempty"`
	Debug              *bool        `json:"debug,omitempty"`
	Driver             string       `json:"driver,omitempty"`
	ListenAddr         string       `json:"listen_addr,omitempty"`
	LogFile            string       `json:"log_file,omitempty"`
	MaxLogFiles        *int         `json:"max_log_files,omitempty"`
	NonceTTLMinutes    *int         `json:"nonce_ttl_minutes,omitempty"`
	ScreenshotsBaseURL string       `json:"screenshots_base_url,omitempty"`
	ScreenshotsDir     string       `json:"screenshots_dir,omitempty"`
	SSHAddr            string       `json:"ssh_addr,omitempty"`
	TablePrefix        *string      `json:"table_prefix,omitempty"`
	Users              []UserConfig `json:"users,omitempty"`
}

// UserConfig is a user allowed to call the API
type UserConfig struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Roles StringArray `json:"roles"`
	Token string      `json:"token"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = ParseCommaSeparated(str)
	return nil
}

// ParseCommaSeparated splits comma-separated string and trims whitespace
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate checks for configuration errors
func (s *Settings) Validate() error {
	if s.Driver != "" && s.Driver != "sqlite3" && s.Driver != "sqlite" {
		return fmt.Errorf("unknown driver '%s' (expected sqlite3 or sqlite)", s.Driver)
	}
	ids := make(map[uint]bool, len(s.Users))
	tokens := make(map[string]bool, len(s.Users))
	for _, u := range s.Users {
		if u.ID == 0 {
			return fmt.Errorf("user '%s' has no id", u.Name)
		}
		if ids[u.ID] {
			return fmt.Errorf("user id %d is configured twice", u.ID)
		}
		ids[u.ID] = true
		if u.Token != "" {
			if tokens[u.Token] {
				return fmt.Errorf("token of user %d is shared with another user", u.ID)
			}
			tokens[u.Token] = true
		}
	}
	return nil
}

// ResolvedDBPath returns the database path with default applied
func (s *Settings) ResolvedDBPath() string {
	if s.DBPath != "" {
		return ExpandPath(s.DBPath)
	}
	return GetDBPath()
}

// ResolvedDriver returns the SQL driver with default applied
func (s *Settings) ResolvedDriver() string {
	if s.Driver != "" {
		return s.Driver
	}
	return DefaultDriver
}

// ResolvedListenAddr returns the HTTP address with default applied
func (s *Settings) ResolvedListenAddr() string {
	if s.ListenAddr != "" {
		return s.ListenAddr
	}
	return DefaultListenAddr
}

// ResolvedNonceTTL returns the anti-forgery nonce lifetime with default applied
func (s *Settings) ResolvedNonceTTL() time.Duration {
	if s.NonceTTLMinutes != nil && *s.NonceTTLMinutes > 0 {
		return time.Duration(*s.NonceTTLMinutes) * time.Minute
	}
	return DefaultNonceTTL
}

// ResolvedScreenshotsDir returns the screenshot directory with default applied
func (s *Settings) ResolvedScreenshotsDir() string {
	if s.ScreenshotsDir != "" {
		return ExpandPath(s.ScreenshotsDir)
	}
	return GetScreenshotsDir()
}

// ResolvedScreenshotsBaseURL returns the URL prefix for stored screenshots
func (s *Settings) ResolvedScreenshotsBaseURL() string {
	if s.ScreenshotsBaseURL != "" {
		return strings.TrimSuffix(s.ScreenshotsBaseURL, "/")
	}
	return "/screenshots"
}

// ResolvedSSHAddr returns the address of the SSH board server with default applied
func (s *Settings) ResolvedSSHAddr() string {
	if s.SSHAddr != "" {
		return s.SSHAddr
	}
	return DefaultSSHAddr
}

// ResolvedAuthorizedKeysPath returns the authorized_keys file checked by the SSH server
func (s *Settings) ResolvedAuthorizedKeysPath() string {
	if s.AuthorizedKeys != "" {
		return ExpandPath(s.AuthorizedKeys)
	}
	return ExpandPath("~/.ssh/authorized_keys")
}

// ResolvedTablePrefix returns the table prefix; an explicit empty prefix is kept
func (s *Settings) ResolvedTablePrefix() string {
	if s.TablePrefix != nil {
		return *s.TablePrefix
	}
	return DefaultTablePrefix
}

// ResolvedCLIUserID returns the user the CLI acts as
func (s *Settings) ResolvedCLIUserID() uint {
	if s.CLIUserID != nil {
		return *s.CLIUserID
	}
	return 1
}

// LoadSettings loads settings from $SITENOTES_HOME/settings.json (or ~/.sitenotes/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $SITENOTES_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
