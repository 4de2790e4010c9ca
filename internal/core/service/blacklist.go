package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

// Blacklist is the set of blocked client identifiers. Entries are permanent.
type Blacklist struct {
	entries *Collection[domain.Set]
	log     zerolog.Logger
}

func NewBlacklist(store ports.CollectionStore, locks *Serializer, log zerolog.Logger) *Blacklist {
	return &Blacklist{
		entries: NewCollection(CollectionBlacklist, store, locks, emptySet, log),
		log:     log,
	}
}

// IsBlocked reports whether id is listed. The empty identifier never is.
func (b *Blacklist) IsBlocked(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	return b.entries.Load(ctx).Has(id)
}

func (b *Blacklist) List(ctx context.Context) []string {
	return b.entries.Load(ctx).Sorted()
}

func (b *Blacklist) Add(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: ip", domain.ErrMissingField)
	}

	err := b.entries.Update(ctx, func(set *domain.Set) error {
		if *set == nil {
			*set = domain.Set{}
		}
		set.Add(id)
		return nil
	})
	if err != nil {
		return err
	}

	b.log.Info().Str("client_id", id).Msg("client blacklisted")
	return nil
}

func (b *Blacklist) seed(ctx context.Context) (bool, error) {
	return b.entries.SeedIfAbsent(ctx)
}
