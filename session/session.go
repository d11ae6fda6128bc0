// Package session binds principal identity, the finance state container,
// and the scoped document store into one lifecycle: hydrate on sign-in,
// persist on every change, tear down on sign-out.
package session

import (
	"context"
	"sync"

	"financewise/engine/appcontext"
	"financewise/engine/finance"
	"financewise/engine/finance/model"
	"financewise/engine/identity"
	"financewise/engine/storage"
)

type phase int

const (
	phaseUninitialized phase = iota
	phaseIdle
	phaseHydrating
	phaseHydrated
)

// Session is the hydration/persistence orchestrator. It owns the
// application state exclusively; consumers read snapshots via State and
// change it only through Dispatch. No persistence write is issued before
// the hydration reads for the current principal have settled, so a
// freshly mounted default state can never overwrite stored data.
type Session struct {
	kv       *storage.KV
	provider identity.Provider

	mu        sync.Mutex
	state     model.State
	principal *identity.Principal
	phase     phase
	closed    bool

	writes sync.WaitGroup
}

// New creates a session holding the default state. Run drives it.
func New(kv *storage.KV, provider identity.Provider) *Session {
	return &Session{
		kv:       kv,
		provider: provider,
		state:    model.DefaultState(),
	}
}

// Run applies the provider's current principal, then follows principal
// changes until ctx is done. Hydration for a principal completes before
// the next change is taken, so a change during hydration simply re-enters
// the sequence afterwards.
func (s *Session) Run(ctx context.Context) {
	s.Hydrate(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case p := <-s.provider.Changes():
			s.apply(ctx, p)
		}
	}
}

// Hydrate applies the provider's current principal synchronously. Run
// calls it once at startup; front ends that never watch for principal
// changes can call it directly instead of Run.
func (s *Session) Hydrate(ctx context.Context) {
	s.apply(ctx, s.provider.Principal())
}

// apply tears the state down to defaults for the new principal and, when
// one is present, hydrates it from storage.
func (s *Session) apply(ctx context.Context, p *identity.Principal) {
	s.mu.Lock()
	s.principal = p
	s.state = model.DefaultState()
	if p == nil {
		s.phase = phaseIdle
	} else {
		s.phase = phaseHydrating
	}
	s.mu.Unlock()

	if p != nil {
		s.hydrate(ctx, *p)
	}
}

// hydrate reads every slice concurrently, each falling back to its
// compiled-in default, then seeds the state container with the snapshot.
func (s *Session) hydrate(ctx context.Context, p identity.Principal) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Hydrating state", "principal", p.ID)

	def := model.DefaultState()
	var snapshot model.State
	var wg sync.WaitGroup

	wg.Add(8)
	go func() {
		defer wg.Done()
		snapshot.User = storage.Get(ctx, s.kv, storage.KeyUserData, def.User, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Transactions = storage.Get(ctx, s.kv, storage.KeyTransactions, def.Transactions, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.BudgetCategories = storage.Get(ctx, s.kv, storage.KeyBudgetCategories, def.BudgetCategories, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Loans = storage.Get(ctx, s.kv, storage.KeyLoans, def.Loans, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Courses = storage.Get(ctx, s.kv, storage.KeyCourses, def.Courses, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.Achievements = storage.Get(ctx, s.kv, storage.KeyAchievements, def.Achievements, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.SavingsGoals = storage.Get(ctx, s.kv, storage.KeySavingsGoals, def.SavingsGoals, p.ID)
	}()
	go func() {
		defer wg.Done()
		snapshot.UserStats = storage.Get(ctx, s.kv, storage.KeyUserStats, def.UserStats, p.ID)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil || s.principal.ID != p.ID {
		// Principal changed while the reads were in flight; drop the snapshot.
		return
	}
	s.state = finance.Reduce(s.state, finance.InitializeState{State: snapshot})
	s.phase = phaseHydrated

	logger.InfoContext(ctx, "State hydrated", "principal", p.ID,
		"transactions", len(snapshot.Transactions), "loans", len(snapshot.Loans))
}

// State returns a snapshot of the current application state.
func (s *Session) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLive()
	return s.state.Clone()
}

// Hydrating reports whether the session is still loading the current
// principal's slices. Consumers show a placeholder instead of content.
func (s *Session) Hydrating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLive()
	return s.phase == phaseHydrating
}

// Dispatch applies one action. Dispatches are serialized: two issued
// back-to-back observe each other's effects. Once hydrated, every
// dispatch triggers an asynchronous write of all slices; a newer snapshot
// may supersede an in-flight write, which is safe because each slice
// document is overwritten wholesale.
func (s *Session) Dispatch(ctx context.Context, action finance.Action) {
	s.mu.Lock()
	s.ensureLive()
	s.state = finance.Reduce(s.state, action)
	snapshot := s.state
	p := s.principal
	persist := s.phase == phaseHydrated && p != nil
	// Register the write before releasing the lock so Close, which flips
	// closed under the same lock, cannot miss it when draining.
	if persist {
		s.writes.Add(1)
	}
	s.mu.Unlock()

	if !persist {
		return
	}

	go func() {
		defer s.writes.Done()
		s.persistAll(ctx, snapshot, p.ID)
	}()
}

// persistAll writes every slice concurrently. Failed writes are contained
// and logged by the adapter; in-memory state is not rolled back.
func (s *Session) persistAll(ctx context.Context, snapshot model.State, userID string) {
	var wg sync.WaitGroup
	save := func(key string, value any) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.kv.Set(ctx, key, value, userID)
		}()
	}

	save(storage.KeyUserData, snapshot.User)
	save(storage.KeyTransactions, snapshot.Transactions)
	save(storage.KeyBudgetCategories, snapshot.BudgetCategories)
	save(storage.KeyLoans, snapshot.Loans)
	save(storage.KeyCourses, snapshot.Courses)
	save(storage.KeyAchievements, snapshot.Achievements)
	save(storage.KeySavingsGoals, snapshot.SavingsGoals)
	save(storage.KeyUserStats, snapshot.UserStats)
	wg.Wait()
}

// Reset deletes every stored document for the current principal, then
// reinitializes the state: sequences emptied, stats zeroed, and the
// profile retained except monthly income and current savings, which are
// zeroed. A no-op when signed out.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	s.ensureLive()
	p := s.principal
	current := s.state
	s.mu.Unlock()

	if p == nil {
		return
	}

	s.kv.ClearAll(ctx, p.ID)
	s.Dispatch(ctx, finance.InitializeState{State: resetState(current)})
}

func resetState(s model.State) model.State {
	user := s.User
	user.MonthlyIncome = 0
	user.CurrentSavings = 0

	return model.State{
		User:             user,
		Transactions:     []model.Transaction{},
		BudgetCategories: []model.BudgetCategory{},
		Loans:            []model.Loan{},
		Courses:          []model.Course{},
		Achievements:     []string{},
		SavingsGoals:     []model.SavingsGoal{},
	}
}

// Flush blocks until all in-flight persistence writes have settled.
func (s *Session) Flush() {
	s.writes.Wait()
}

// Close marks the session dead after waiting out in-flight writes. Any
// later State, Dispatch, Hydrating, or Reset call panics: access outside
// a live lifecycle is a wiring bug, not a runtime condition.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.writes.Wait()
}

func (s *Session) ensureLive() {
	if s.closed {
		panic("session: state accessed outside a live session lifecycle")
	}
}
