package directory

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

func TestDirectory_Lookup(t *testing.T) {
	dir, err := New([]Seed{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "usuario", Password: "user123", Role: domain.RoleUser},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	u, ok := dir.Lookup("admin")
	if !ok {
		t.Fatalf("expected admin to be registered")
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", u.Role)
	}
	if u.PasswordHash == "admin123" {
		t.Fatalf("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if _, ok := dir.Lookup("ghost"); ok {
		t.Fatalf("unknown user must not resolve")
	}
}

func TestDirectory_RejectsBadSeeds(t *testing.T) {
	if _, err := New([]Seed{{Username: "", Password: "x", Role: domain.RoleAdmin}}); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if _, err := New([]Seed{{Username: "a", Password: "", Role: domain.RoleAdmin}}); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if _, err := New([]Seed{{Username: "a", Password: "x", Role: "ROOT"}}); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := New([]Seed{
		{Username: "a", Password: "x", Role: domain.RoleAdmin},
		{Username: "a", Password: "y", Role: domain.RoleUser},
	}); err == nil {
		t.Fatalf("expected error for duplicate username")
	}
}
