package execution

// Change describes a single mutation. For Add, New is the container after the
// modification and Existed is always true.
type Change struct {
	Key     string
	Old     interface{}
	New     interface{}
	Existed bool
}

// StateListener is invoked every time Set stores a value or Add modifies a
// container.
type StateListener func(c *Context, change *Change)

// RegisterListeners attaches callbacks called after every mutation.
// Listeners run synchronously on the mutating goroutine.
func (c *Context) RegisterListeners(fn ...StateListener) {
	for _, f := range fn {
		if f != nil {
			c.listeners = append(c.listeners, f)
		}
	}
}

func (c *Context) notify(key string, oldVal, newVal interface{}, existed bool) {
	if len(c.listeners) == 0 {
		return
	}
	change := &Change{Key: key, Old: oldVal, New: newVal, Existed: existed}
	for _, fn := range c.listeners {
		fn(c, change)
	}
}
