package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

// FileLinks serves the read-only file link list.
type FileLinks struct {
	links *Collection[[]domain.FileLink]
}

func NewFileLinks(store ports.CollectionStore, locks *Serializer, log zerolog.Logger) *FileLinks {
	return &FileLinks{links: NewCollection(CollectionFiles, store, locks, emptyFileLinks, log).WithSeed(defaultFiles)}
}

func (f *FileLinks) List(ctx context.Context) []domain.FileLink {
	return f.links.Load(ctx)
}

func (f *FileLinks) seed(ctx context.Context) (bool, error) {
	return f.links.SeedIfAbsent(ctx)
}
