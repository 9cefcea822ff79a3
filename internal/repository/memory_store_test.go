package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
)

func TestMemoryStoreInsertAndFindOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := models.User{
		ID:        "u1",
		Username:  "alice",
		Email:     "alice@example.com",
		IsActive:  true,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	id, err := store.InsertOne(ctx, domrepo.ColUsers, user)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != "u1" {
		t.Fatalf("inserted id %q, want u1", id)
	}

	var got models.User
	if err := store.FindOne(ctx, domrepo.ColUsers, map[string]any{"username": "alice"}, &got); err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.ID != "u1" || got.Email != "alice@example.com" {
		t.Fatalf("wrong document: %+v", got)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Fatalf("time did not round-trip: %v vs %v", got.CreatedAt, user.CreatedAt)
	}

	err = store.FindOne(ctx, domrepo.ColUsers, map[string]any{"username": "bob"}, &got)
	if !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("missing doc: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUniqueIndex(t *testing.T) {
	store := NewMemoryStore(WithUniqueIndex(domrepo.ColUsers, "username", "email"))
	ctx := context.Background()

	first := models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	if _, err := store.InsertOne(ctx, domrepo.ColUsers, first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dupName := models.User{ID: "u2", Username: "alice", Email: "other@example.com"}
	if _, err := store.InsertOne(ctx, domrepo.ColUsers, dupName); !errors.Is(err, domrepo.ErrDuplicateKey) {
		t.Fatalf("duplicate username: got %v, want ErrDuplicateKey", err)
	}

	dupMail := models.User{ID: "u3", Username: "bob", Email: "alice@example.com"}
	if _, err := store.InsertOne(ctx, domrepo.ColUsers, dupMail); !errors.Is(err, domrepo.ErrDuplicateKey) {
		t.Fatalf("duplicate email: got %v, want ErrDuplicateKey", err)
	}
}

func TestMemoryStoreSortAndLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		alert := models.Alert{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			AlertType: models.AlertPriceTarget,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	var newest []models.Alert
	err := store.Find(ctx, domrepo.ColAlerts, map[string]any{"user_id": "u1"}, &newest,
		domrepo.WithSort("created_at", true), domrepo.WithLimit(3))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(newest) != 3 {
		t.Fatalf("limit ignored: got %d docs", len(newest))
	}
	for i := 1; i < len(newest); i++ {
		if newest[i].CreatedAt.After(newest[i-1].CreatedAt) {
			t.Fatalf("not newest-first at %d", i)
		}
	}

	var oldest []models.Alert
	err = store.Find(ctx, domrepo.ColAlerts, nil, &oldest, domrepo.WithSort("created_at", false))
	if err != nil {
		t.Fatalf("find asc: %v", err)
	}
	if len(oldest) != 5 || !oldest[0].CreatedAt.Equal(base) {
		t.Fatalf("ascending sort broken: %+v", oldest)
	}
}

func TestMemoryStoreUpdateOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alert := models.Alert{ID: "a1", UserID: "u1", IsRead: false}
	if _, err := store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := store.UpdateOne(ctx, domrepo.ColAlerts,
		map[string]any{"_id": "a1", "user_id": "u1"}, map[string]any{"is_read": true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("matched %d, want 1", n)
	}

	var got models.Alert
	if err := store.FindOne(ctx, domrepo.ColAlerts, map[string]any{"_id": "a1"}, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.IsRead {
		t.Fatal("patch not applied")
	}

	// Re-marking an already-read alert still matches.
	n, err = store.UpdateOne(ctx, domrepo.ColAlerts,
		map[string]any{"_id": "a1"}, map[string]any{"is_read": true})
	if err != nil || n != 1 {
		t.Fatalf("idempotent update: n=%d err=%v", n, err)
	}

	n, err = store.UpdateOne(ctx, domrepo.ColAlerts,
		map[string]any{"_id": "a1", "user_id": "someone-else"}, map[string]any{"is_read": true})
	if err != nil || n != 0 {
		t.Fatalf("foreign filter must not match: n=%d err=%v", n, err)
	}
}

func TestMemoryStoreDeleteOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cfg := models.TradingAPIConfig{ID: "c1", UserID: "u1", Provider: "alpaca"}
	if _, err := store.InsertOne(ctx, domrepo.ColAPIConfigs, cfg); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := store.DeleteOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": "c1", "user_id": "u2"})
	if err != nil || n != 0 {
		t.Fatalf("foreign delete must not match: n=%d err=%v", n, err)
	}

	n, err = store.DeleteOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": "c1", "user_id": "u1"})
	if err != nil || n != 1 {
		t.Fatalf("owner delete: n=%d err=%v", n, err)
	}

	var got models.TradingAPIConfig
	err = store.FindOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": "c1"}, &got)
	if !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("deleted doc still found: %v", err)
	}
}

func TestMemoryStoreConcurrentFindAndUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		alert := models.Alert{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	// Readers sort and decode while a writer patches the same documents.
	// Run with -race to catch shared map access.
	done := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				var alerts []models.Alert
				err := store.Find(ctx, domrepo.ColAlerts, map[string]any{"user_id": "u1"}, &alerts,
					domrepo.WithSort("created_at", true))
				if err != nil || len(alerts) != 20 {
					t.Errorf("find: n=%d err=%v", len(alerts), err)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		id := string(rune('a' + i%20))
		_, err := store.UpdateOne(ctx, domrepo.ColAlerts,
			map[string]any{"_id": id}, map[string]any{"is_read": i%2 == 0})
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	close(done)
	wg.Wait()
}

func TestMemoryStoreBoolFilter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i, read := range []bool{true, false, false} {
		alert := models.Alert{ID: string(rune('a' + i)), UserID: "u1", IsRead: read}
		if _, err := store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	var unread []models.Alert
	err := store.Find(ctx, domrepo.ColAlerts, map[string]any{"user_id": "u1", "is_read": false}, &unread)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread, got %d", len(unread))
	}
}
