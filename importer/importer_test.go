package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"financewise/engine/finance/model"
	"financewise/engine/identity"
	"financewise/engine/importer"
	"financewise/engine/session"
	"financewise/engine/storage"
	"financewise/engine/synthetic"
)

// Mock for the DocumentStore interface.
type mockStore struct {
	mu   sync.Mutex
	docs map[string]bson.M
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string]bson.M)}
}

func (m *mockStore) Read(_ context.Context, id string) (bson.Raw, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *mockStore) Write(_ context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *mockStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func newHydratedSession(t *testing.T) *session.Session {
	t.Helper()
	provider := identity.NewManualProvider()
	provider.SignIn(identity.Principal{ID: "u1"})
	sess := session.New(storage.NewKV(newMockStore()), provider)
	sess.Hydrate(context.Background())
	t.Cleanup(sess.Close)
	return sess
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestImportCSVFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "statement.csv",
		"Date,Type,Amount,Description,Category\n"+
			"2026-08-01,income,1000,Salary,Salary\n"+
			"2026-08-02,expense,50.25,Weekly shop,Groceries\n")

	sess := newHydratedSession(t)
	stats, err := importer.ImportCSVFiles(ctx, sess, dir)
	if err != nil {
		t.Fatalf("ImportCSVFiles failed: %v", err)
	}
	sess.Flush()

	if stats.ProcessedFiles != 1 || stats.RowsImported != 2 {
		t.Errorf("Expected 1 file and 2 rows, got %+v", stats)
	}

	txs := sess.State().Transactions
	if len(txs) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(txs))
	}
	// Newest-first: the last dispatched row ends up in front.
	if txs[0].Category != "Groceries" || txs[0].Amount != 50.25 {
		t.Errorf("Unexpected head transaction: %+v", txs[0])
	}
	if txs[1].Type != model.Income || txs[1].Amount != 1000 {
		t.Errorf("Unexpected tail transaction: %+v", txs[1])
	}
}

func TestImportSkipsBadRowsWithoutAborting(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "messy.csv",
		"Date,Type,Amount,Description,Category\n"+
			",income,10,missing date,\n"+
			"2026-08-01,transfer,10,unknown kind,\n"+
			"2026-08-01,expense,abc,bad amount,\n"+
			"2026-08-01,expense,-5,negative,\n"+
			"2026-08-03,expense,12.50,kept,Dining\n")

	sess := newHydratedSession(t)
	stats, err := importer.ImportCSVFiles(ctx, sess, dir)
	if err != nil {
		t.Fatalf("ImportCSVFiles failed: %v", err)
	}

	if stats.RowsImported != 1 {
		t.Errorf("Expected exactly the valid row imported, got %d", stats.RowsImported)
	}
	txs := sess.State().Transactions
	if len(txs) != 1 || txs[0].Description != "kept" {
		t.Errorf("Expected only the valid transaction, got %+v", txs)
	}
}

func TestImportRecordsFileFailures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not a statement")
	writeFile(t, dir, "headerless.csv", "Foo,Bar\n1,2\n")
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o750); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	sess := newHydratedSession(t)
	stats, err := importer.ImportCSVFiles(ctx, sess, dir)
	if err != nil {
		t.Fatalf("ImportCSVFiles failed: %v", err)
	}

	if stats.TotalFiles != 2 || stats.FailedFiles != 2 || stats.ProcessedFiles != 0 {
		t.Errorf("Expected both files recorded as failures and the subdirectory ignored, got %+v", stats)
	}
	if len(sess.State().Transactions) != 0 {
		t.Error("Expected no transactions from failed files")
	}
}

func TestImportGeneratedStatement(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if _, err := synthetic.GenerateStatement(25, dir); err != nil {
		t.Fatalf("GenerateStatement failed: %v", err)
	}

	sess := newHydratedSession(t)
	stats, err := importer.ImportCSVFiles(ctx, sess, dir)
	if err != nil {
		t.Fatalf("ImportCSVFiles failed: %v", err)
	}

	if stats.RowsImported != 25 {
		t.Errorf("Expected all generated rows to import, got %d", stats.RowsImported)
	}
	if len(sess.State().Transactions) != 25 {
		t.Errorf("Expected 25 transactions, got %d", len(sess.State().Transactions))
	}
}
