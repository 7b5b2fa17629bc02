package cmd

import (
	"github.com/sitenotes/sitenotes/internal/access"
	"github.com/sitenotes/sitenotes/internal/adapters/screenshots"
	"github.com/sitenotes/sitenotes/internal/adapters/storage"
	"github.com/sitenotes/sitenotes/internal/config"
	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/export"
	"github.com/sitenotes/sitenotes/internal/server"
	"github.com/sitenotes/sitenotes/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	CommentService *services.CommentService
	Nonces         *server.NonceStore
	Screenshots    *screenshots.FileStore
	Settings       *config.Settings
	Users          *access.StaticDirectory

	// Internal - for cleanup only
	repo *storage.SQLiteRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	repo, err := storage.NewSQLiteRepository(storage.Options{
		Driver:      settings.ResolvedDriver(),
		Path:        settings.ResolvedDBPath(),
		TablePrefix: settings.ResolvedTablePrefix(),
	})
	if err != nil {
		return nil, err
	}

	users := access.NewStaticDirectory(accounts(settings))
	shots := screenshots.NewFileStore(settings.ResolvedScreenshotsDir(), settings.ResolvedScreenshotsBaseURL())

	cache := services.NewCache()
	settingsService := services.NewSettingsService(repo, cache)
	commentService := services.NewCommentService(
		repo,
		services.NewTaxonomyService(repo, cache),
		settingsService,
		access.NewRolePolicy(settingsService),
		shots,
		export.NewCSVExporter(users),
	)

	return &Container{
		CommentService: commentService,
		Nonces:         server.NewNonceStore(settings.ResolvedNonceTTL()),
		Screenshots:    shots,
		Settings:       settings,
		Users:          users,
		repo:           repo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}

// accounts converts the configured users. Without any, a single local
// administrator (id 1, no API token) is available to the CLI and board.
func accounts(settings *config.Settings) []access.Account {
	if len(settings.Users) == 0 {
		return []access.Account{{
			User: domain.User{ID: 1, Name: "admin", Roles: []string{domain.RoleAdministrator}},
		}}
	}

	out := make([]access.Account, len(settings.Users))
	for i, u := range settings.Users {
		out[i] = access.Account{
			Token: u.Token,
			User:  domain.User{ID: u.ID, Name: u.Name, Roles: []string(u.Roles)},
		}
	}
	return out
}
