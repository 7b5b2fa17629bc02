package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sitenotes/sitenotes/internal/config"
	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	As          uint             `help:"Act as this configured user id (overrides cli_user_id)" env:"SITENOTES_USER"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for the log file"`
	MaxLogFiles int              `help:"Maximum number of rotated log files to keep (0 = unlimited)" default:"5"`
	Version     kong.VersionFlag `help:"Show version information"`

	Anchors    AnchorsCmd    `cmd:"anchors" help:"Check comment anchors against page snapshots"`
	Board      BoardCmd      `cmd:"board" help:"Open the kanban board" default:"1"`
	Categories CategoriesCmd `cmd:"categories" help:"Manage comment categories"`
	Comments   CommentsCmd   `cmd:"comments" aliases:"c" help:"Manage comments (list, view, add, status, del)"`
	Config     ConfigCmd     `cmd:"config" help:"Show settings file location and available options"`
	Priorities PrioritiesCmd `cmd:"priorities" help:"Manage priority levels"`
	Serve      ServeCmd      `cmd:"serve" help:"Serve the HTTP endpoint (and optionally the SSH board)"`
	Settings   SettingsCmd   `cmd:"settings" help:"View or change site notes settings"`
	Uninstall  UninstallCmd  `cmd:"uninstall" help:"Remove every table, option and screenshot"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.MaxLogFiles == config.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("SITENOTES_MAX_LOG_FILES"); !hasEnv && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("SITENOTES_DEBUG"); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}
	if c.DebugFile == "" && c.settings.LogFile != "" {
		c.DebugFile = config.ExpandPath(c.settings.LogFile)
	}

	if _, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		File:        c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	}); err != nil {
		return err
	}

	// Create container AFTER logging is initialized so GORM's logger has a sink
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// User returns the configured user the CLI acts as
func (c *CLI) User() (domain.User, error) {
	id := c.settings.ResolvedCLIUserID()
	if c.As != 0 {
		id = c.As
	}
	user, ok := c.Container.Users.ByID(id)
	if !ok {
		return domain.User{}, fmt.Errorf("user %d is not configured in %s", id, config.GetSettingsPath())
	}
	return user, nil
}
