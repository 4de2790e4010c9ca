package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/ports"
)

type seeder interface {
	seed(ctx context.Context) (bool, error)
}

// Services groups every collection-backed component built on one store.
type Services struct {
	Tags          *TagRegistry
	Users         *UserDirectory
	Announcements *BoundedLog
	Chat          *BoundedLog
	Blacklist     *Blacklist
	Files         *FileLinks
}

// NewServices builds all components over store, sharing one Serializer.
func NewServices(store ports.CollectionStore, passwordCost int, log zerolog.Logger) *Services {
	locks := NewSerializer(0)
	tags := NewTagRegistry(store, locks, log)
	return &Services{
		Tags:          tags,
		Users:         NewUserDirectory(store, locks, tags, passwordCost, log),
		Announcements: NewAnnouncementLog(store, locks, log),
		Chat:          NewChatLog(store, locks, log),
		Blacklist:     NewBlacklist(store, locks, log),
		Files:         NewFileLinks(store, locks, log),
	}
}

// Seed writes the default value of every collection that does not exist yet.
// It returns the names of the collections it wrote.
func (s *Services) Seed(ctx context.Context) ([]string, error) {
	steps := []struct {
		name string
		s    seeder
	}{
		{CollectionUsers, s.Users},
		{CollectionTags, s.Tags},
		{CollectionAnnouncements, s.Announcements},
		{CollectionChat, s.Chat},
		{CollectionBlacklist, s.Blacklist},
		{CollectionFiles, s.Files},
	}

	var written []string
	for _, step := range steps {
		ok, err := step.s.seed(ctx)
		if err != nil {
			return written, fmt.Errorf("seed %s: %w", step.name, err)
		}
		if ok {
			written = append(written, step.name)
		}
	}
	return written, nil
}
