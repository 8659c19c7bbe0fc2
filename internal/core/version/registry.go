package version

import "sync"

// Registry hands out version IDs and keeps loaded versions by ID. IDs are
// reserved before loading so a navigator can be bound to a version whose
// tree is still being fetched.
type Registry struct {
	mu       sync.RWMutex
	nextID   int
	versions map[int]*Version
}

// NewRegistry creates an empty registry. IDs start at 1.
func NewRegistry() *Registry {
	return &Registry{versions: make(map[int]*Version)}
}

// Reserve returns a fresh version ID.
func (r *Registry) Reserve() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// Put stores v under id, overwriting v.ID.
func (r *Registry) Put(id int, v *Version) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = id
	r.versions[id] = v
}

// Get returns the loaded version for id.
func (r *Registry) Get(id int) (*Version, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.versions[id]
	return v, ok
}
