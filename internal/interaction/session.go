package interaction

import "sync"

// Session owns the State of a single viewer. Events are applied in the
// order Dispatch is called; the latest one wins.
type Session struct {
	resolver *Resolver

	mu    sync.Mutex
	state State
}

// NewSession creates a session with an empty state.
func NewSession(r *Resolver) *Session {
	return &Session{resolver: r}
}

// Dispatch applies ev and returns the resulting state.
func (s *Session) Dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.resolver.Apply(s.state, ev)
	return s.state
}

// Handle validates ev against the session's resolver and applies it in
// one step, so a concurrent Rebind cannot slip between the two. Invalid
// events leave the state untouched.
func (s *Session) Handle(ev Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resolver.Validate(ev); err != nil {
		return s.state, err
	}
	s.state = s.resolver.Apply(s.state, ev)
	return s.state, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rebind switches the session to a new resolver, dropping any hover or
// selection that no longer refers to the resolver's graph.
func (s *Session) Rebind(r *Resolver) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
	g := r.Graph()
	if _, ok := g.Node(s.state.HoveredNode); !ok {
		s.state.HoveredNode = ""
	}
	if _, ok := g.Edge(s.state.HoveredEdge); !ok {
		s.state.HoveredEdge = ""
	}
	if n, ok := g.Node(s.state.Selected); !ok || !r.Selectable(n) {
		s.state.Selected = ""
	}
	return s.state
}

// View returns the current state together with the resolver it belongs to.
func (s *Session) View() (*Resolver, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver, s.state
}

// Resolver returns the resolver events are applied with.
func (s *Session) Resolver() *Resolver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver
}
