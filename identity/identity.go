// Package identity supplies the current principal to the engine. The
// engine only consumes "current principal or none"; sign-in and sign-out
// themselves happen outside it.
package identity

import "sync"

// Principal is the signed-in identity that owns one application state
// and one set of persisted documents.
type Principal struct {
	ID    string
	Email string
}

// Provider exposes the current principal and emits changes to it.
type Provider interface {
	// Principal returns the current principal, or nil when signed out.
	Principal() *Principal
	// Changes emits the new principal (or nil on sign-out) after every change.
	Changes() <-chan *Principal
}

// ManualProvider is a Provider driven by explicit SignIn/SignOut calls.
// It backs the command-line front end and tests.
type ManualProvider struct {
	mu      sync.Mutex
	current *Principal
	changes chan *Principal
}

// NewManualProvider creates a signed-out provider.
func NewManualProvider() *ManualProvider {
	return &ManualProvider{changes: make(chan *Principal, 1)}
}

// Principal returns the current principal, or nil when signed out.
func (p *ManualProvider) Principal() *Principal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Changes emits the principal after every SignIn and SignOut.
func (p *ManualProvider) Changes() <-chan *Principal {
	return p.changes
}

// SignIn makes the given principal current and emits the change.
func (p *ManualProvider) SignIn(principal Principal) {
	p.mu.Lock()
	p.current = &principal
	p.mu.Unlock()
	p.changes <- &principal
}

// SignOut clears the current principal and emits the change.
func (p *ManualProvider) SignOut() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.changes <- nil
}
