package repository

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/diewo77/invoicer/internal/db"
	"github.com/diewo77/invoicer/internal/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open("sqlite:///"+filepath.Join(t.TempDir(), "test.db"), false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := db.Migrate(store); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }

func clientPayload(contact string) ClientPayload {
	return ClientPayload{
		Name:              "Acme s.r.o.",
		Address:           "Main 1",
		City:              "Brno",
		Country:           "CZ",
		MainContactMethod: models.ContactEmail,
		MainContact:       contact,
		AdditionalContact: strPtr("+420 123 456 789"),
		ICO:               strPtr("12345678"),
		DIC:               strPtr("CZ12345678"),
		Notes:             strPtr("pays on time"),
		Favourite:         true,
	}
}

func TestClientCreateRoundTrip(t *testing.T) {
	repo := NewClients(newTestStore(t))

	p := clientPayload("billing@acme.example")
	created, err := repo.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Fatalf("expected created_at == updated_at, got %q / %q", created.CreatedAt, created.UpdatedAt)
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected client")
	}
	if got.Name != p.Name || got.Address != p.Address || got.City != p.City || got.Country != p.Country {
		t.Fatalf("unexpected base fields: %+v", got)
	}
	if got.MainContactMethod != p.MainContactMethod || got.MainContact != p.MainContact {
		t.Fatalf("unexpected contact fields: %+v", got)
	}
	if got.AdditionalContact == nil || *got.AdditionalContact != *p.AdditionalContact {
		t.Fatalf("unexpected additional contact: %v", got.AdditionalContact)
	}
	if got.ICO == nil || *got.ICO != *p.ICO || got.DIC == nil || *got.DIC != *p.DIC {
		t.Fatalf("unexpected tax ids: %v / %v", got.ICO, got.DIC)
	}
	if got.Notes == nil || *got.Notes != *p.Notes {
		t.Fatalf("unexpected notes: %v", got.Notes)
	}
	if !got.Favourite {
		t.Fatal("expected favourite flag to persist")
	}
	if got.CreatedBy != "dev" {
		t.Fatalf("unexpected created_by: %q", got.CreatedBy)
	}
}

func TestClientGetMissing(t *testing.T) {
	repo := NewClients(newTestStore(t))
	got, err := repo.Get("no-such-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestClientContactConflictCaseInsensitive(t *testing.T) {
	repo := NewClients(newTestStore(t))

	first, err := repo.Create(clientPayload("a@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Create(clientPayload("A@Example.com")); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict got %v", err)
	}

	// Soft-deleting the owner frees the contact for reuse.
	if deleted, err := repo.SoftDelete(first.ID); err != nil || !deleted {
		t.Fatalf("soft delete: deleted=%v err=%v", deleted, err)
	}
	if _, err := repo.Create(clientPayload("A@Example.com")); err != nil {
		t.Fatalf("expected create to succeed after soft delete, got %v", err)
	}
}

func TestClientUpdateConflictExcludesSelf(t *testing.T) {
	repo := NewClients(newTestStore(t))

	a, err := repo.Create(clientPayload("a@example.com"))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := repo.Create(clientPayload("b@example.com")); err != nil {
		t.Fatalf("create b: %v", err)
	}

	// Keeping your own contact is not a conflict.
	p := clientPayload("A@EXAMPLE.COM")
	p.Name = "Acme renamed"
	updated, err := repo.Update(a.ID, p)
	if err != nil {
		t.Fatalf("update with own contact: %v", err)
	}
	if updated.Name != "Acme renamed" {
		t.Fatalf("expected renamed client got %q", updated.Name)
	}

	// Taking someone else's contact is.
	p.MainContact = "b@example.com"
	if _, err := repo.Update(a.ID, p); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict got %v", err)
	}
}

func TestClientUpdateMissing(t *testing.T) {
	repo := NewClients(newTestStore(t))
	got, err := repo.Update("no-such-id", clientPayload("x@example.com"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestClientSoftDeleteExcludesButKeepsRow(t *testing.T) {
	store := newTestStore(t)
	repo := NewClients(store)

	created, err := repo.Create(clientPayload("gone@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if deleted, err := repo.SoftDelete(created.ID); err != nil || !deleted {
		t.Fatalf("soft delete: deleted=%v err=%v", deleted, err)
	}

	if got, err := repo.Get(created.ID); err != nil || got != nil {
		t.Fatalf("expected deleted client to be absent, got %+v err=%v", got, err)
	}
	clients, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("expected empty list got %d entries", len(clients))
	}

	// The row is retained for history, tombstone set.
	conn, closer, err := store.Conn()
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	defer closer()
	var row struct {
		DeletedAt *string
		UpdatedAt string
	}
	if err := conn.Raw(`SELECT deleted_at, updated_at FROM clients WHERE id = ?`, created.ID).Scan(&row).Error; err != nil {
		t.Fatalf("select raw row: %v", err)
	}
	if row.DeletedAt == nil {
		t.Fatal("expected deleted_at to be set on the retained row")
	}
	if *row.DeletedAt < row.UpdatedAt {
		t.Fatalf("expected deleted_at >= updated_at, got %q < %q", *row.DeletedAt, row.UpdatedAt)
	}

	// Deleting again is a no-op, not an error.
	if deleted, err := repo.SoftDelete(created.ID); err != nil || deleted {
		t.Fatalf("expected no-op second delete, deleted=%v err=%v", deleted, err)
	}
}

func TestClientCreateRace(t *testing.T) {
	repo := NewClients(newTestStore(t))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(clientPayload("raced@example.com"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}
}

func TestClientTimestampMonotonicity(t *testing.T) {
	repo := NewClients(newTestStore(t))

	created, err := repo.Create(clientPayload("audit@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	prev := created.UpdatedAt
	for i := 0; i < 3; i++ {
		p := clientPayload("audit@example.com")
		p.Notes = strPtr("round " + string(rune('1'+i)))
		updated, err := repo.Update(created.ID, p)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if updated.CreatedAt != created.CreatedAt {
			t.Fatalf("created_at changed: %q -> %q", created.CreatedAt, updated.CreatedAt)
		}
		if updated.UpdatedAt < prev {
			t.Fatalf("updated_at went backwards: %q -> %q", prev, updated.UpdatedAt)
		}
		prev = updated.UpdatedAt
	}
	if prev < created.CreatedAt {
		t.Fatalf("updated_at %q before created_at %q", prev, created.CreatedAt)
	}
}
