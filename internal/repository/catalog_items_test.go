package repository

import (
	"testing"

	"github.com/diewo77/invoicer/internal/models"
)

func intPtr(n int) *int { return &n }

func TestCatalogItemLifecycle(t *testing.T) {
	repo := NewCatalogItems(newTestStore(t))

	created, err := repo.Create(CatalogItemPayload{
		Name:        "Design work",
		Description: "UX and visual design",
		Unit:        "hour",
		UnitPrice:   15000,
		TaxRate:     intPtr(21),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item got %d", len(items))
	}
	item := items[0]
	if item.Name != "Design work" || item.Unit != "hour" || item.UnitPrice != 15000 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.TaxRate == nil || *item.TaxRate != 21 {
		t.Fatalf("unexpected tax rate: %v", item.TaxRate)
	}

	// Clearing the tax rate persists NULL, not zero.
	updated, err := repo.Update(created.ID, CatalogItemPayload{
		Name:        "Design work",
		Description: "UX and visual design",
		Unit:        "hour",
		UnitPrice:   15000,
		TaxRate:     nil,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TaxRate != nil {
		t.Fatalf("expected nil tax rate got %v", *updated.TaxRate)
	}
	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.TaxRate != nil {
		t.Fatalf("expected persisted nil tax rate, got %+v", got)
	}

	if deleted, err := repo.SoftDelete(created.ID); err != nil || !deleted {
		t.Fatalf("soft delete: deleted=%v err=%v", deleted, err)
	}
	if got, err := repo.Get(created.ID); err != nil || got != nil {
		t.Fatalf("expected deleted item to be absent, got %+v err=%v", got, err)
	}
	items, err = repo.List()
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list got %d entries", len(items))
	}
}

func TestCatalogItemListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	repo := NewCatalogItems(store)

	// Seed rows with distinct creation times; List must return them newest
	// first regardless of insertion order.
	conn, closer, err := store.Conn()
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	rows := []models.CatalogItem{
		{ID: "old", Name: "Old", Description: "d", Unit: "pc", UnitPrice: 100,
			CreatedBy: "dev", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
		{ID: "new", Name: "New", Description: "d", Unit: "pc", UnitPrice: 100,
			CreatedBy: "dev", CreatedAt: "2025-06-01T00:00:00Z", UpdatedAt: "2025-06-01T00:00:00Z"},
		{ID: "mid", Name: "Mid", Description: "d", Unit: "pc", UnitPrice: 100,
			CreatedBy: "dev", CreatedAt: "2024-08-01T00:00:00Z", UpdatedAt: "2024-08-01T00:00:00Z"},
	}
	for _, row := range rows {
		if err := conn.Create(&row).Error; err != nil {
			closer()
			t.Fatalf("seed %s: %v", row.ID, err)
		}
	}
	closer()

	items, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items got %d", len(items))
	}
	for i, wantID := range []string{"new", "mid", "old"} {
		if items[i].ID != wantID {
			t.Fatalf("position %d: expected %q got %q", i, wantID, items[i].ID)
		}
	}
}

func TestCatalogItemUpdateMissing(t *testing.T) {
	repo := NewCatalogItems(newTestStore(t))
	got, err := repo.Update("no-such-id", CatalogItemPayload{Name: "x", Description: "x", Unit: "pc", UnitPrice: 1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestCatalogItemSoftDeleteMissing(t *testing.T) {
	repo := NewCatalogItems(newTestStore(t))
	deleted, err := repo.SoftDelete("no-such-id")
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if deleted {
		t.Fatal("expected no-op for missing id")
	}
}
