package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

const (
	chatCapacity  = 1000
	chatReadLimit = 500
)

// BoundedLog is a newest-first sequence of entries. capacity bounds the
// persisted length and readLimit bounds what List returns; zero means no bound.
type BoundedLog struct {
	entries   *Collection[[]domain.Entry]
	capacity  int
	readLimit int
	now       func() time.Time
}

// NewAnnouncementLog returns the unbounded announcements log.
func NewAnnouncementLog(store ports.CollectionStore, locks *Serializer, log zerolog.Logger) *BoundedLog {
	now := time.Now
	welcome := func() []domain.Entry { return defaultAnnouncements(now()) }
	return &BoundedLog{
		entries: NewCollection(CollectionAnnouncements, store, locks, emptyEntries, log).WithSeed(welcome),
		now:     now,
	}
}

// NewChatLog returns the chat log, which keeps 1000 entries and serves 500.
func NewChatLog(store ports.CollectionStore, locks *Serializer, log zerolog.Logger) *BoundedLog {
	return &BoundedLog{
		entries:   NewCollection(CollectionChat, store, locks, emptyEntries, log),
		capacity:  chatCapacity,
		readLimit: chatReadLimit,
		now:       time.Now,
	}
}

// Append trims text and inserts a new entry at the front.
func (l *BoundedLog) Append(ctx context.Context, author, text string) (domain.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Entry{}, domain.ErrEmptyContent
	}

	entry := domain.Entry{Author: author, Text: text, Date: l.now().UTC()}
	err := l.entries.Update(ctx, func(entries *[]domain.Entry) error {
		next := make([]domain.Entry, 0, len(*entries)+1)
		next = append(next, entry)
		next = append(next, *entries...)
		if l.capacity > 0 && len(next) > l.capacity {
			next = next[:l.capacity]
		}
		*entries = next
		return nil
	})
	if err != nil {
		return domain.Entry{}, fmt.Errorf("append %s: %w", l.entries.Name(), err)
	}
	return entry, nil
}

// List returns at most limit entries, newest first. limit <= 0 asks for as
// many as the log serves.
func (l *BoundedLog) List(ctx context.Context, limit int) []domain.Entry {
	entries := l.entries.Load(ctx)
	if l.readLimit > 0 && (limit <= 0 || limit > l.readLimit) {
		limit = l.readLimit
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (l *BoundedLog) seed(ctx context.Context) (bool, error) {
	return l.entries.SeedIfAbsent(ctx)
}
