package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

// TagRegistry keeps the global tag vocabulary in insertion order.
type TagRegistry struct {
	tags *Collection[[]string]
	log  zerolog.Logger
}

// NewTagRegistry returns a TagRegistry persisted in store.
func NewTagRegistry(store ports.CollectionStore, locks *Serializer, log zerolog.Logger) *TagRegistry {
	return &TagRegistry{
		tags: NewCollection(CollectionTags, store, locks, emptyNames, log).WithSeed(defaultTags),
		log:  log,
	}
}

func (r *TagRegistry) List(ctx context.Context) []string {
	return r.tags.Load(ctx)
}

func (r *TagRegistry) Exists(ctx context.Context, name string) bool {
	return slices.Contains(r.tags.Load(ctx), normalizeTag(name))
}

// Create appends name to the registry.
func (r *TagRegistry) Create(ctx context.Context, name string) error {
	name = normalizeTag(name)
	if name == "" {
		return fmt.Errorf("%w: name", domain.ErrMissingField)
	}

	err := r.tags.Update(ctx, func(tags *[]string) error {
		if slices.Contains(*tags, name) {
			return fmt.Errorf("tag %q: %w", name, domain.ErrAlreadyExists)
		}
		*tags = append(*tags, name)
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Str("tag", name).Msg("tag created")
	return nil
}

func (r *TagRegistry) seed(ctx context.Context) (bool, error) {
	return r.tags.SeedIfAbsent(ctx)
}

// normalizeTag is applied to every tag name before it is stored or compared.
func normalizeTag(name string) string {
	return strings.TrimSpace(name)
}
