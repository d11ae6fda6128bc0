package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"financewise/engine/finance/model"
	"financewise/engine/storage"

	"go.mongodb.org/mongo-driver/bson"
)

// Mock for the DocumentStore interface: an in-memory document map with
// merge-write semantics and per-id error injection.
type mockDocumentStore struct {
	mu      sync.Mutex
	docs    map[string]bson.M
	readErr map[string]error
	failOn  map[string]error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		docs:    make(map[string]bson.M),
		readErr: make(map[string]error),
		failOn:  make(map[string]error),
	}
}

func (m *mockDocumentStore) Read(_ context.Context, id string) (bson.Raw, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[id]; err != nil {
		return nil, false, err
	}
	doc, ok := m.docs[id]
	if !ok {
		return nil, false, nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (m *mockDocumentStore) Write(_ context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[id]; err != nil {
		return err
	}
	doc, ok := m.docs[id]
	if !ok {
		doc = bson.M{}
		m.docs[id] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *mockDocumentStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[id]; err != nil {
		return err
	}
	delete(m.docs, id)
	return nil
}

func (m *mockDocumentStore) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[id]
	return ok
}

func TestDocPath(t *testing.T) {
	if got := storage.DocPath("", storage.KeyLoans); got != "financeWise_loans" {
		t.Errorf("Expected unscoped path financeWise_loans, got %s", got)
	}
	if got := storage.DocPath("u1", storage.KeyLoans); got != "u1/kv/financeWise_loans" {
		t.Errorf("Expected scoped path u1/kv/financeWise_loans, got %s", got)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	kv := storage.NewKV(store)

	txs := []model.Transaction{
		{ID: "t1", Type: model.Income, Amount: 1000, Description: "Salary", Category: "Salary", Date: "2026-08-01"},
	}
	kv.Set(ctx, storage.KeyTransactions, txs, "u1")

	got := storage.Get(ctx, kv, storage.KeyTransactions, []model.Transaction{}, "u1")
	if len(got) != 1 || got[0].ID != "t1" || got[0].Amount != 1000 {
		t.Errorf("Expected the stored transaction back, got %+v", got)
	}
}

func TestGetMissingReturnsDefault(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewKV(newMockDocumentStore())

	def := model.UserStats{Points: 42}
	got := storage.Get(ctx, kv, storage.KeyUserStats, def, "u1")
	if got != def {
		t.Errorf("Expected default stats, got %+v", got)
	}
}

func TestGetReadFailureReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	store.readErr[storage.DocPath("u1", storage.KeyLoans)] = errors.New("store unreachable")
	kv := storage.NewKV(store)

	def := []model.Loan{{ID: "fallback"}}
	got := storage.Get(ctx, kv, storage.KeyLoans, def, "u1")
	if len(got) != 1 || got[0].ID != "fallback" {
		t.Errorf("Expected default loans on read failure, got %+v", got)
	}
}

func TestGetShapeMismatchReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	store.docs[storage.DocPath("u1", storage.KeyUserStats)] = bson.M{"value": "not stats"}
	kv := storage.NewKV(store)

	def := model.UserStats{StreakDays: 7}
	got := storage.Get(ctx, kv, storage.KeyUserStats, def, "u1")
	if got != def {
		t.Errorf("Expected default on shape mismatch, got %+v", got)
	}
}

func TestGetMissingValueFieldReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	store.docs[storage.DocPath("u1", storage.KeyAchievements)] = bson.M{"other": 1}
	kv := storage.NewKV(store)

	got := storage.Get(ctx, kv, storage.KeyAchievements, []string{"default"}, "u1")
	if len(got) != 1 || got[0] != "default" {
		t.Errorf("Expected default on missing value field, got %+v", got)
	}
}

func TestSetPreservesSiblingFields(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	id := storage.DocPath("u1", storage.KeyUserData)
	store.docs[id] = bson.M{"meta": "keep"}
	kv := storage.NewKV(store)

	kv.Set(ctx, storage.KeyUserData, model.UserProfile{Name: "Ada"}, "u1")

	if store.docs[id]["meta"] != "keep" {
		t.Errorf("Expected sibling field to survive a merge write, got %+v", store.docs[id])
	}
	got := storage.Get(ctx, kv, storage.KeyUserData, model.UserProfile{}, "u1")
	if got.Name != "Ada" {
		t.Errorf("Expected merged value, got %+v", got)
	}
}

func TestScopingIsolation(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	kv := storage.NewKV(store)

	kv.Set(ctx, storage.KeyAchievements, []string{"saver"}, "alice")
	kv.Set(ctx, storage.KeyAchievements, []string{"spender"}, "bob")

	gotAlice := storage.Get(ctx, kv, storage.KeyAchievements, []string{}, "alice")
	gotBob := storage.Get(ctx, kv, storage.KeyAchievements, []string{}, "bob")
	if len(gotAlice) != 1 || gotAlice[0] != "saver" {
		t.Errorf("Expected alice's achievements untouched, got %+v", gotAlice)
	}
	if len(gotBob) != 1 || gotBob[0] != "spender" {
		t.Errorf("Expected bob's achievements untouched, got %+v", gotBob)
	}

	kv.Remove(ctx, storage.KeyAchievements, "alice")
	if !store.has(storage.DocPath("bob", storage.KeyAchievements)) {
		t.Error("Removing alice's document must not touch bob's")
	}
}

func TestClearAllSurvivesPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := newMockDocumentStore()
	for _, key := range storage.Keys() {
		store.docs[storage.DocPath("u1", key)] = bson.M{"value": []string{}}
	}
	store.failOn[storage.DocPath("u1", storage.KeyLoans)] = errors.New("delete failed")
	kv := storage.NewKV(store)

	kv.ClearAll(ctx, "u1")

	for _, key := range storage.Keys() {
		id := storage.DocPath("u1", key)
		if key == storage.KeyLoans {
			if !store.has(id) {
				t.Error("Expected the failing key to remain")
			}
			continue
		}
		if store.has(id) {
			t.Errorf("Expected %s to be deleted despite another key failing", key)
		}
	}
}
