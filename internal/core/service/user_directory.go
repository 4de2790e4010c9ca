package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/core/ports"
)

// UserDirectory implements ports.UserDirectory on top of the users collection.
type UserDirectory struct {
	users *Collection[domain.Users]
	tags  ports.TagRegistry
	cost  int
	log   zerolog.Logger

	seedOnce  sync.Once
	seedUsers domain.Users
	seedErr   error
}

// NewUserDirectory returns a directory persisted in store. cost is the bcrypt
// cost; values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewUserDirectory(store ports.CollectionStore, locks *Serializer, tags ports.TagRegistry, cost int, log zerolog.Logger) *UserDirectory {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	d := &UserDirectory{tags: tags, cost: cost, log: log}
	d.users = NewCollection(CollectionUsers, store, locks, emptyUsers, log).WithSeed(d.seedDirectory)
	return d
}

// VerifyCredentials returns the user when password matches, otherwise
// domain.ErrBadCredential. Unknown usernames are indistinguishable from a
// wrong password. The username is trimmed the same way Register trims it.
func (d *UserDirectory) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	u := d.load(ctx)[username]
	if u == nil || !checkPassword(u, password) {
		return nil, domain.ErrBadCredential
	}

	if u.PasswordHash == "" {
		d.upgradeLegacy(ctx, username, password)
	}
	return u.Clone(), nil
}

// Register creates a user with the lowest role and no tags.
func (d *UserDirectory) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrMissingField)
	}

	hash, err := d.hash(password)
	if err != nil {
		return nil, err
	}

	created := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Tags:         domain.Set{},
	}
	err = d.users.Update(ctx, func(users *domain.Users) error {
		if *users == nil {
			*users = domain.Users{}
		}
		if _, exists := (*users)[username]; exists {
			return fmt.Errorf("%q: %w", username, domain.ErrDuplicateUsername)
		}
		(*users)[username] = created.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// ChangePassword replaces the credential after checking oldPassword.
func (d *UserDirectory) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: newPassword", domain.ErrMissingField)
	}
	hash, err := d.hash(newPassword)
	if err != nil {
		return err
	}

	return d.users.Update(ctx, func(users *domain.Users) error {
		u := (*users)[username]
		if u == nil {
			return fmt.Errorf("%q: %w", username, domain.ErrNotFound)
		}
		if !checkPassword(u, oldPassword) {
			return domain.ErrBadCredential
		}
		u.PasswordHash = hash
		u.LegacyPassword = ""
		return nil
	})
}

// SetRole overwrites the stored role. Open sessions keep their snapshot.
func (d *UserDirectory) SetRole(ctx context.Context, username, role string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}

	err = d.users.Update(ctx, func(users *domain.Users) error {
		u := (*users)[username]
		if u == nil {
			return fmt.Errorf("%q: %w", username, domain.ErrNotFound)
		}
		u.Role = r
		return nil
	})
	if err != nil {
		return err
	}

	d.log.Info().Str("username", username).Str("role", string(r)).Msg("role changed")
	return nil
}

// AddTag grants a registered tag. Granting a tag twice is a no-op.
func (d *UserDirectory) AddTag(ctx context.Context, username, tag string) error {
	tag = normalizeTag(tag)
	if tag == "" {
		return fmt.Errorf("%w: tag", domain.ErrMissingField)
	}
	if !d.tags.Exists(ctx, tag) {
		return fmt.Errorf("%q: %w", tag, domain.ErrUnknownTag)
	}

	return d.users.Update(ctx, func(users *domain.Users) error {
		u := (*users)[username]
		if u == nil {
			return fmt.Errorf("%q: %w", username, domain.ErrNotFound)
		}
		if u.Tags == nil {
			u.Tags = domain.Set{}
		}
		u.Tags.Add(tag)
		return nil
	})
}

// Get returns the live record for username.
func (d *UserDirectory) Get(ctx context.Context, username string) (*domain.User, error) {
	u := d.load(ctx)[username]
	if u == nil {
		return nil, fmt.Errorf("%q: %w", username, domain.ErrNotFound)
	}
	return u.Clone(), nil
}

// List returns the whole directory.
func (d *UserDirectory) List(ctx context.Context) domain.Users {
	return d.load(ctx)
}

func (d *UserDirectory) seed(ctx context.Context) (bool, error) {
	if _, err := d.seedValue(); err != nil {
		return false, err
	}
	return d.users.SeedIfAbsent(ctx)
}

// load reads the collection and restores the fields that are implied by the
// map key or may be missing from older records.
func (d *UserDirectory) load(ctx context.Context) domain.Users {
	users := d.users.Load(ctx)
	for name, u := range users {
		if u == nil {
			delete(users, name)
			continue
		}
		u.Username = name
		if u.Tags == nil {
			u.Tags = domain.Set{}
		}
	}
	return users
}

func (d *UserDirectory) upgradeLegacy(ctx context.Context, username, password string) {
	hash, err := d.hash(password)
	if err == nil {
		err = d.users.Update(ctx, func(users *domain.Users) error {
			u := (*users)[username]
			if u == nil || u.PasswordHash != "" || u.LegacyPassword != password {
				return nil
			}
			u.PasswordHash = hash
			u.LegacyPassword = ""
			return nil
		})
	}
	if err != nil {
		d.log.Warn().Err(err).Str("username", username).Msg("failed to upgrade legacy password")
	}
}

func (d *UserDirectory) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// seedDirectory builds the first-start directory. Hashing is done once; every
// call returns an independent copy.
func (d *UserDirectory) seedDirectory() domain.Users {
	seed, err := d.seedValue()
	if err != nil {
		d.log.Error().Err(err).Msg("cannot build seed users")
		return domain.Users{}
	}
	out := make(domain.Users, len(seed))
	for name, u := range seed {
		out[name] = u.Clone()
	}
	return out
}

func (d *UserDirectory) seedValue() (domain.Users, error) {
	d.seedOnce.Do(func() {
		users := make(domain.Users, len(seedAccounts))
		for _, a := range seedAccounts {
			hash, err := d.hash(a.password)
			if err != nil {
				d.seedErr = err
				return
			}
			users[a.username] = &domain.User{
				Username:     a.username,
				PasswordHash: hash,
				Role:         a.role,
				Tags:         domain.NewSet(a.tags...),
			}
		}
		d.seedUsers = users
	})
	return d.seedUsers, d.seedErr
}

func checkPassword(u *domain.User, password string) bool {
	if u.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	}
	if u.LegacyPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.LegacyPassword), []byte(password)) == 1
}
