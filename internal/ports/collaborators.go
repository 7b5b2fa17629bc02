package ports

import (
	"context"
	"io"

	"github.com/sitenotes/sitenotes/internal/domain"
)

// OptionsStore persists named JSON documents (settings, categories, priorities)
type OptionsStore interface {
	// DeleteOptions removes every stored option
	DeleteOptions(ctx context.Context) error

	// GetOption decodes the option into dest. found is false when the option was never saved.
	GetOption(ctx context.Context, name string, dest any) (found bool, err error)

	// SetOption encodes value and stores it under name
	SetOption(ctx context.Context, name string, value any) error
}

// SettingsReader loads the current plugin settings, defaults applied
type SettingsReader interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
}

// AccessPolicy decides whether a user may use site notes
type AccessPolicy interface {
	HasAccess(ctx context.Context, user domain.User) bool
}

// UserDirectory resolves API tokens, SSH login names and user ids to users
type UserDirectory interface {
	ByID(id uint) (domain.User, bool)
	ByName(name string) (domain.User, bool)
	ByToken(token string) (domain.User, bool)
	List() []domain.User
}

// ScreenshotStore keeps captured screenshots and hands back their public URL
type ScreenshotStore interface {
	// Save stores a data URL ("data:image/png;base64,...") and returns the public URL
	Save(ctx context.Context, dataURL string) (string, error)

	// Remove deletes the screenshot published at url
	Remove(ctx context.Context, url string) error

	// RemoveAll deletes every stored screenshot
	RemoveAll(ctx context.Context) error
}

// CommentExporter renders a comment listing
type CommentExporter interface {
	Export(w io.Writer, comments []domain.Comment) error
}
