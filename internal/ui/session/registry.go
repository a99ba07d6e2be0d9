// Package session keeps one interaction state container per browser.
//
// A gorilla session cookie carries a random viewer id; the Registry maps
// that id to the viewer's lineage Session and scorecard hover. Viewers
// idle for longer than the TTL are dropped by Sweep.
package session

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/meshx-labs/meshx/internal/interaction"
)

const (
	cookieName = "meshx"
	idKey      = "viewer"
)

// Viewer is the ephemeral state of one browser.
type Viewer struct {
	ID      uuid.UUID
	Lineage *interaction.Session

	mu       sync.Mutex
	blocker  string
	lastSeen time.Time
}

// HoverBlocker records the scorecard blocker under the pointer ("" for
// none) and returns it.
func (v *Viewer) HoverBlocker(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.blocker = id
	return v.blocker
}

// Blocker returns the hovered scorecard blocker.
func (v *Viewer) Blocker() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.blocker
}

func (v *Viewer) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Viewer) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.Sub(v.lastSeen)
}

// Registry maps viewer ids to viewers and owns the resolver new viewers
// start with.
type Registry struct {
	store    sessions.Store
	ttl      time.Duration
	now      func() time.Time
	resolver atomic.Pointer[interaction.Resolver]

	mu      sync.Mutex
	viewers map[uuid.UUID]*Viewer
}

// NewRegistry creates a registry. A zero ttl keeps viewers forever.
func NewRegistry(store sessions.Store, r *interaction.Resolver, ttl time.Duration) *Registry {
	reg := &Registry{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		viewers: make(map[uuid.UUID]*Viewer),
	}
	reg.resolver.Store(r)
	return reg
}

// Resolver returns the current resolver.
func (reg *Registry) Resolver() *interaction.Resolver {
	return reg.resolver.Load()
}

// Swap installs a new resolver and rebinds every live viewer to it.
func (reg *Registry) Swap(r *interaction.Resolver) {
	reg.resolver.Store(r)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, v := range reg.viewers {
		v.Lineage.Rebind(r)
	}
}

// Viewer returns the viewer of the request, creating one when needed. The
// cookie is written on every call so its expiry slides with activity. It
// must run before anything is written to w.
func (reg *Registry) Viewer(w http.ResponseWriter, r *http.Request) (*Viewer, error) {
	// A cookie signed with an old secret decodes with an error but still
	// yields a fresh session, which is what we want.
	sess, err := reg.store.Get(r, cookieName)
	if sess == nil {
		return nil, err
	}

	if raw, ok := sess.Values[idKey].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			v, ok := reg.lookup(id)
			if !ok {
				v = reg.create(id)
			}
			if err := sess.Save(r, w); err != nil {
				return nil, err
			}
			return v, nil
		}
	}

	id := uuid.New()
	sess.Values[idKey] = id.String()
	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	return reg.create(id), nil
}

func (reg *Registry) lookup(id uuid.UUID) (*Viewer, bool) {
	reg.mu.Lock()
	v, ok := reg.viewers[id]
	reg.mu.Unlock()
	if ok {
		v.touch(reg.now())
	}
	return v, ok
}

func (reg *Registry) create(id uuid.UUID) *Viewer {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if v, ok := reg.viewers[id]; ok {
		return v
	}
	v := &Viewer{ID: id, Lineage: interaction.NewSession(reg.Resolver()), lastSeen: reg.now()}
	reg.viewers[id] = v
	return v
}

// Sweep drops viewers idle for longer than the TTL and returns how many
// were removed.
func (reg *Registry) Sweep() int {
	if reg.ttl <= 0 {
		return 0
	}
	now := reg.now()

	reg.mu.Lock()
	defer reg.mu.Unlock()
	removed := 0
	for id, v := range reg.viewers {
		if v.idleSince(now) > reg.ttl {
			delete(reg.viewers, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live viewers.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.viewers)
}
