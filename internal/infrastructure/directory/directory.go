// Package directory provides the static credential directory. It is built
// once at process start and never mutated afterwards; there is no user
// management API.
package directory

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

// Seed describes one account to register at construction time.
type Seed struct {
	Username string
	Password string
	Role     string
}

// Directory is an immutable username → credential lookup.
type Directory struct {
	users map[string]domain.User
}

// New hashes each seed password with bcrypt and builds the lookup table.
func New(seeds []Seed) (*Directory, error) {
	users := make(map[string]domain.User, len(seeds))
	for _, s := range seeds {
		if s.Username == "" || s.Password == "" {
			return nil, fmt.Errorf("directory: seed for %q missing username or password", s.Username)
		}
		if s.Role != domain.RoleAdmin && s.Role != domain.RoleUser {
			return nil, fmt.Errorf("directory: seed for %q has unknown role %q", s.Username, s.Role)
		}
		if _, dup := users[s.Username]; dup {
			return nil, fmt.Errorf("directory: duplicate seed username %q", s.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("directory: hash password for %q: %w", s.Username, err)
		}
		users[s.Username] = domain.User{
			Username:     s.Username,
			PasswordHash: string(hash),
			Role:         s.Role,
		}
	}
	return &Directory{users: users}, nil
}

// Lookup returns the credential entry for username, if registered.
func (d *Directory) Lookup(username string) (*domain.User, bool) {
	u, ok := d.users[username]
	if !ok {
		return nil, false
	}
	return &u, true
}
