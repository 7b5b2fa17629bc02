package access

import (
	"cmp"
	"crypto/subtle"
	"slices"
	"strings"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// Account is a configured user with its API token
type Account struct {
	Token string
	User  domain.User
}

// StaticDirectory is a read-only UserDirectory built at startup
type StaticDirectory struct {
	accounts []Account
}

// Verify interface compliance at compile time
var _ ports.UserDirectory = (*StaticDirectory)(nil)

// NewStaticDirectory creates a directory over accounts. Accounts are ordered by user id.
func NewStaticDirectory(accounts []Account) *StaticDirectory {
	sorted := slices.Clone(accounts)
	slices.SortFunc(sorted, func(a, b Account) int {
		return cmp.Compare(a.User.ID, b.User.ID)
	})
	return &StaticDirectory{accounts: sorted}
}

// ByID implements ports.UserDirectory
func (d *StaticDirectory) ByID(id uint) (domain.User, bool) {
	for _, a := range d.accounts {
		if a.User.ID == id {
			return a.User, true
		}
	}
	return domain.User{}, false
}

// ByToken implements ports.UserDirectory
func (d *StaticDirectory) ByToken(token string) (domain.User, bool) {
	if token == "" {
		return domain.User{}, false
	}
	for _, a := range d.accounts {
		if a.Token != "" && subtle.ConstantTimeCompare([]byte(a.Token), []byte(token)) == 1 {
			return a.User, true
		}
	}
	return domain.User{}, false
}

// List implements ports.UserDirectory
func (d *StaticDirectory) List() []domain.User {
	users := make([]domain.User, len(d.accounts))
	for i, a := range d.accounts {
		users[i] = a.User
	}
	return users
}

// ByName implements ports.UserDirectory. Names match ignoring case; SSH
// login names are resolved this way.
func (d *StaticDirectory) ByName(name string) (domain.User, bool) {
	if name == "" {
		return domain.User{}, false
	}
	for _, a := range d.accounts {
		if strings.EqualFold(a.User.Name, name) {
			return a.User, true
		}
	}
	return domain.User{}, false
}
