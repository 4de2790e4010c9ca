package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/duckcorp/portal/internal/core/domain"
	"github.com/duckcorp/portal/internal/infrastructure/db/memory"
)

func newTestDirectory(t *testing.T, store *memory.CollectionStore) *UserDirectory {
	t.Helper()
	locks := NewSerializer(0)
	tags := NewTagRegistry(store, locks, nopLog)
	d := NewUserDirectory(store, locks, tags, testCost, nopLog)

	ctx := context.Background()
	if _, err := tags.seed(ctx); err != nil {
		t.Fatalf("seed tags: %v", err)
	}
	if _, err := d.seed(ctx); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return d
}

func TestUserDirectory_SeedAccounts(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	u, err := d.VerifyCredentials(ctx, "admin", "duck123")
	if err != nil {
		t.Fatalf("verify admin: %v", err)
	}
	if u.Role != domain.RoleAdmin || !u.Tags.Has("founder") {
		t.Fatalf("unexpected admin record: %+v", u)
	}

	if _, err := d.VerifyCredentials(ctx, "announcer", "quackpost"); err != nil {
		t.Fatalf("verify announcer: %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "user", "quack"); err != nil {
		t.Fatalf("verify user: %v", err)
	}
}

func TestUserDirectory_VerifyRejects(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if _, err := d.VerifyCredentials(ctx, "admin", "wrong"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential for wrong password, got %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "ghost", "duck123"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential for unknown user, got %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "admin", ""); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential for empty password, got %v", err)
	}
}

func TestUserDirectory_Register(t *testing.T) {
	store := memory.NewCollectionStore()
	d := newTestDirectory(t, store)
	ctx := context.Background()

	u, err := d.Register(ctx, " alice ", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "alice" || u.Role != domain.RoleUser || len(u.Tags) != 0 {
		t.Fatalf("unexpected user: %+v", u)
	}
	if strings.Contains(raw(t, store, CollectionUsers), `"pw"`) {
		t.Fatalf("plaintext password persisted")
	}
	if _, err := d.VerifyCredentials(ctx, "alice", "pw"); err != nil {
		t.Fatalf("verify alice: %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "admin", "duck123"); err != nil {
		t.Fatalf("seed users must survive the first write: %v", err)
	}
}

func TestUserDirectory_RegisterRejects(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if _, err := d.Register(ctx, "", "pw"); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty username, got %v", err)
	}
	if _, err := d.Register(ctx, "   ", "pw"); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank username, got %v", err)
	}
	if _, err := d.Register(ctx, "bob", ""); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty password, got %v", err)
	}
	if _, err := d.Register(ctx, "admin", "x"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserDirectory_ChangePassword(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if err := d.ChangePassword(ctx, "user", "nope", "new"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}
	if err := d.ChangePassword(ctx, "ghost", "x", "new"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := d.ChangePassword(ctx, "user", "quack", ""); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	if err := d.ChangePassword(ctx, "user", "quack", "honk"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "user", "quack"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("old password still accepted")
	}
	if _, err := d.VerifyCredentials(ctx, "user", "honk"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserDirectory_SetRole(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if err := d.SetRole(ctx, "user", "superuser"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if err := d.SetRole(ctx, "ghost", "dev"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := d.SetRole(ctx, "user", "dev"); err != nil {
		t.Fatalf("set role: %v", err)
	}
	u, err := d.Get(ctx, "user")
	if err != nil || u.Role != domain.RoleDev {
		t.Fatalf("expected dev, got %+v (%v)", u, err)
	}
}

func TestUserDirectory_AddTag(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if err := d.AddTag(ctx, "user", "ops"); !errors.Is(err, domain.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
	if err := d.AddTag(ctx, "ghost", "dev"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := d.AddTag(ctx, "user", "dev"); err != nil {
			t.Fatalf("add tag (%d): %v", i, err)
		}
	}
	u, _ := d.Get(ctx, "user")
	if got := u.Tags.Sorted(); len(got) != 1 || got[0] != "dev" {
		t.Fatalf("expected [dev], got %v", got)
	}
}

func TestUserDirectory_LegacyPlaintextIsUpgraded(t *testing.T) {
	store := memory.NewCollectionStore()
	store.Put(CollectionUsers, []byte(`{
		"old": {"password": "letmein", "role": "employee", "tags": {"dev": true}}
	}`))
	d := newTestDirectory(t, store)
	ctx := context.Background()

	if _, err := d.VerifyCredentials(ctx, "old", "nope"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}

	u, err := d.VerifyCredentials(ctx, "old", "letmein")
	if err != nil {
		t.Fatalf("verify legacy: %v", err)
	}
	if u.Role != domain.RoleEmployee || !u.Tags.Has("dev") {
		t.Fatalf("unexpected legacy record: %+v", u)
	}

	stored := raw(t, store, CollectionUsers)
	if strings.Contains(stored, "letmein") || !strings.Contains(stored, "password_hash") {
		t.Fatalf("legacy password not upgraded: %s", stored)
	}
	if _, err := d.VerifyCredentials(ctx, "old", "letmein"); err != nil {
		t.Fatalf("verify after upgrade: %v", err)
	}
}

func TestUserDirectory_ListRestoresUsernames(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	users := d.List(context.Background())

	if len(users) != 3 {
		t.Fatalf("expected 3 seed users, got %d", len(users))
	}
	for name, u := range users {
		if u.Username != name {
			t.Fatalf("username not restored for %q", name)
		}
	}
}

func TestUserDirectory_BrokenRecordDoesNotReviveSeedAccounts(t *testing.T) {
	for name, data := range map[string]string{"empty": "", "malformed": `{"admin":`} {
		t.Run(name, func(t *testing.T) {
			store := memory.NewCollectionStore()
			d := newTestDirectory(t, store)
			ctx := context.Background()

			if err := d.ChangePassword(ctx, "admin", "duck123", "s3cret-new"); err != nil {
				t.Fatalf("change password: %v", err)
			}
			store.Put(CollectionUsers, []byte(data))

			if _, err := d.VerifyCredentials(ctx, "admin", "duck123"); !errors.Is(err, domain.ErrBadCredential) {
				t.Fatalf("seed password accepted on a broken directory: %v", err)
			}
			if users := d.List(ctx); len(users) != 0 {
				t.Fatalf("expected an empty directory, got %d users", len(users))
			}

			if _, err := d.Register(ctx, "carol", "pw"); err != nil {
				t.Fatalf("register: %v", err)
			}
			users := d.List(ctx)
			if len(users) != 1 || users["carol"] == nil {
				t.Fatalf("seed accounts written back: %v", users)
			}
		})
	}
}

func TestUserDirectory_LoginTrimsUsername(t *testing.T) {
	d := newTestDirectory(t, memory.NewCollectionStore())
	ctx := context.Background()

	if _, err := d.Register(ctx, "bob ", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, name := range []string{"bob", "bob ", "  bob"} {
		u, err := d.VerifyCredentials(ctx, name, "pw")
		if err != nil {
			t.Fatalf("VerifyCredentials(%q): %v", name, err)
		}
		if u.Username != "bob" {
			t.Fatalf("VerifyCredentials(%q): got username %q", name, u.Username)
		}
	}
}

func TestUserDirectory_AddTagTrimsName(t *testing.T) {
	store := memory.NewCollectionStore()
	d := newTestDirectory(t, store)
	ctx := context.Background()

	if err := d.tags.Create(ctx, "ops "); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := d.AddTag(ctx, "user", "ops "); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if err := d.AddTag(ctx, "user", " ops"); err != nil {
		t.Fatalf("add tag again: %v", err)
	}
	u, _ := d.Get(ctx, "user")
	if got := u.Tags.Sorted(); len(got) != 1 || got[0] != "ops" {
		t.Fatalf("expected [ops], got %v", got)
	}

	if err := d.AddTag(ctx, "user", "   "); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank tag, got %v", err)
	}
}
