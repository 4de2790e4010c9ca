package ports

import (
	"context"

	"github.com/duckcorp/portal/internal/core/domain"
)

// AuthService establishes and tears down sessions.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Session, error)
	Register(ctx context.Context, username, password string) (string, *domain.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// UserDirectory manages credential, role and tag records.
type UserDirectory interface {
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
	Register(ctx context.Context, username, password string) (*domain.User, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	SetRole(ctx context.Context, username, role string) error
	AddTag(ctx context.Context, username, tag string) error
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) domain.Users
}

// TagRegistry is the global vocabulary of grantable tags.
type TagRegistry interface {
	List(ctx context.Context) []string
	Create(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) bool
}

// EntryLog is a newest-first bounded sequence (announcements, chat).
type EntryLog interface {
	Append(ctx context.Context, author, text string) (domain.Entry, error)
	List(ctx context.Context, limit int) []domain.Entry
}

// Blacklist is the set of blocked client identifiers.
type Blacklist interface {
	IsBlocked(ctx context.Context, id string) bool
	List(ctx context.Context) []string
	Add(ctx context.Context, id string) error
}

// FileLinks exposes the read-only file link list.
type FileLinks interface {
	List(ctx context.Context) []domain.FileLink
}

// SearchRelay fetches a result page from the external search engine.
type SearchRelay interface {
	Search(ctx context.Context, query string) ([]byte, error)
}
