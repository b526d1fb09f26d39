package execution

import "sync"

// Synchronized guards a Context with a read/write mutex for hosts that share
// one context across goroutines.
type Synchronized struct {
	ctx *Context
	mu  sync.RWMutex
}

// Set inserts or overwrites the value stored at key
func (s *Synchronized) Set(key string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Set(key, data)
}

// Get returns the value stored at key
func (s *Synchronized) Get(key string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx.Get(key)
}

// Add writes data into the array-like value stored at key
func (s *Synchronized) Add(key string, inner *string, data interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Add(key, inner, data)
}

// Append appends data to the array-like value stored at key
func (s *Synchronized) Append(key string, data interface{}) error {
	return s.Add(key, nil, data)
}

// Put writes data at the inner sub-key of the array-like value stored at key
func (s *Synchronized) Put(key, inner string, data interface{}) error {
	return s.Add(key, &inner, data)
}

// Has returns true if key is present
func (s *Synchronized) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx.Has(key)
}

// Keys returns the keys in insertion order
func (s *Synchronized) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx.Keys()
}

// Values returns a shallow copy of all stored values
func (s *Synchronized) Values() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx.Values()
}

// Do runs fn with exclusive access to the underlying context
func (s *Synchronized) Do(fn func(c *Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ctx)
}

// NewSynchronized wraps ctx. Listeners of ctx run while the lock is held and
// must not call back into the wrapper.
func NewSynchronized(ctx *Context) *Synchronized {
	return &Synchronized{ctx: ctx}
}
