package service

import (
	"time"

	"github.com/duckcorp/portal/internal/core/domain"
)

// Collection names.
const (
	CollectionUsers         = "users"
	CollectionTags          = "tags"
	CollectionAnnouncements = "announcements"
	CollectionChat          = "chat"
	CollectionBlacklist     = "blacklist"
	CollectionFiles         = "files"
)

// seedAccount is a first-start directory entry. Passwords are hashed when the
// seed value is built.
type seedAccount struct {
	username string
	password string
	role     domain.Role
	tags     []string
}

var seedAccounts = []seedAccount{
	{username: "admin", password: "duck123", role: domain.RoleAdmin, tags: []string{"founder"}},
	{username: "announcer", password: "quackpost", role: domain.RoleAnnouncer},
	{username: "user", password: "quack", role: domain.RoleUser},
}

func defaultTags() []string {
	return []string{"employee", "dev", "admin", "founder"}
}

func defaultAnnouncements(now time.Time) []domain.Entry {
	return []domain.Entry{{
		Author: "admin",
		Text:   "Welcome to Duck Corporations! Stay yellow 🌟",
		Date:   now.UTC(),
	}}
}

func defaultFiles() []domain.FileLink {
	return []domain.FileLink{
		{Name: "TrueNAS UI", URL: "/truenas/", Embed: true},
		{Name: "Company Handbook", URL: "https://example.com/handbook.pdf"},
	}
}

func emptyUsers() domain.Users { return domain.Users{} }

func emptyNames() []string { return []string{} }

func emptyEntries() []domain.Entry { return []domain.Entry{} }

func emptyFileLinks() []domain.FileLink { return []domain.FileLink{} }

func emptySet() domain.Set { return domain.Set{} }
