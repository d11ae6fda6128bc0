package storage

import (
	"context"
	"sync"

	"financewise/engine/appcontext"

	"go.mongodb.org/mongo-driver/bson"
)

// Storage keys, one per persisted slice of the application state.
const (
	KeyUserData         = "financeWise_userData"
	KeyTransactions     = "financeWise_transactions"
	KeyBudgetCategories = "financeWise_budgetCategories"
	KeyLoans            = "financeWise_loans"
	KeyCourses          = "financeWise_courses"
	KeyAchievements     = "financeWise_achievements"
	KeySavingsGoals     = "financeWise_savingsGoals"
	KeyUserStats        = "financeWise_userStats"
)

// Keys returns every logical slice key.
func Keys() []string {
	return []string{
		KeyUserData,
		KeyTransactions,
		KeyBudgetCategories,
		KeyLoans,
		KeyCourses,
		KeyAchievements,
		KeySavingsGoals,
		KeyUserStats,
	}
}

// DocPath maps a logical key and an optional principal id to a document
// path within the store's collection. Without a principal the document
// lives at the collection root; with one it is nested under the
// principal's kv namespace so every principal's slices are isolated.
func DocPath(userID, key string) string {
	if userID == "" {
		return key
	}

	return userID + "/kv/" + key
}

// KV is the scoped key-value adapter over a DocumentStore. All failures
// are contained here: reads fall back to the caller's default, writes and
// deletes are logged and swallowed, so callers never carry
// persistence-failure paths.
type KV struct {
	store DocumentStore
}

// NewKV creates a scoped key-value adapter.
func NewKV(store DocumentStore) *KV {
	return &KV{store: store}
}

// Get reads the value stored under key for the given principal, decoding
// it into T. A missing document, a failed read, or a stored shape that
// does not decode as T all resolve to def.
func Get[T any](ctx context.Context, kv *KV, key string, def T, userID string) T {
	logger := appcontext.LoggerFromContext(ctx)

	raw, found, err := kv.store.Read(ctx, DocPath(userID, key))
	if err != nil {
		logger.ErrorContext(ctx, "Error reading from document store", "key", key, "error", err)
		return def
	}
	if !found {
		return def
	}

	value, lookupErr := raw.LookupErr("value")
	if lookupErr != nil {
		logger.WarnContext(ctx, "Stored document has no value field, using default", "key", key)
		return def
	}

	var out T
	if err := value.Unmarshal(&out); err != nil {
		logger.WarnContext(ctx, "Stored value does not match expected shape, using default",
			"key", key, "error", err)
		return def
	}

	return out
}

// Set writes value under key for the given principal, wrapped in a value
// field and merged into the document. Failures are logged, not returned.
func (kv *KV) Set(ctx context.Context, key string, value any, userID string) {
	logger := appcontext.LoggerFromContext(ctx)

	if err := kv.store.Write(ctx, DocPath(userID, key), bson.M{"value": value}); err != nil {
		logger.ErrorContext(ctx, "Error saving to document store", "key", key, "error", err)
	}
}

// Remove deletes the document under key for the given principal.
// Failures are logged, not returned.
func (kv *KV) Remove(ctx context.Context, key, userID string) {
	logger := appcontext.LoggerFromContext(ctx)

	if err := kv.store.Delete(ctx, DocPath(userID, key)); err != nil {
		logger.ErrorContext(ctx, "Error removing from document store", "key", key, "error", err)
	}
}

// ClearAll deletes every logical key for the given principal. Deletes run
// concurrently and independently; one failed key does not abort the rest.
func (kv *KV) ClearAll(ctx context.Context, userID string) {
	var wg sync.WaitGroup
	for _, key := range Keys() {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			kv.Remove(ctx, key, userID)
		}(key)
	}
	wg.Wait()
}
