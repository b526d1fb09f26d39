package execution

import (
	"sort"

	"github.com/viant/structology/conv"
)

// Context is a mutable, string keyed bag of data shared by the executors of a
// multi-step process. Executors write their results into it and later steps
// read them back.
//
// Context does no locking; wrap it with NewSynchronized when several
// goroutines mutate the same instance.
type Context struct {
	ID        string
	payload   map[string]interface{}
	keys      []string
	listeners []StateListener
	converter *conv.Converter
}

// Set inserts or overwrites the value stored at key
func (c *Context) Set(key string, data interface{}) {
	old, ok := c.payload[key]
	if !ok {
		c.keys = append(c.keys, key)
	}
	c.payload[key] = data
	c.notify(key, old, data, ok)
}

// Get returns the value stored at key exactly as it was set
func (c *Context) Get(key string) (interface{}, error) {
	value, ok := c.payload[key]
	if !ok {
		return nil, newMissingKeyError(key, c.keys, false)
	}
	return value, nil
}

// Add writes data into the array-like value stored at key. With nil inner the
// data is appended to the end, otherwise it is written at the inner sub-key.
func (c *Context) Add(key string, inner *string, data interface{}) error {
	current, ok := c.payload[key]
	if !ok {
		return newMissingKeyError(key, c.keys, true)
	}
	updated, err := c.addElement(key, current, inner, data)
	if err != nil {
		return err
	}
	c.payload[key] = updated
	c.notify(key, current, updated, true)
	return nil
}

// Append appends data to the end of the array-like value stored at key
func (c *Context) Append(key string, data interface{}) error {
	return c.Add(key, nil, data)
}

// Put writes data at the inner sub-key of the array-like value stored at key
func (c *Context) Put(key, inner string, data interface{}) error {
	return c.Add(key, &inner, data)
}

// Has returns true if key is present
func (c *Context) Has(key string) bool {
	_, ok := c.payload[key]
	return ok
}

// Keys returns the keys in insertion order
func (c *Context) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of keys
func (c *Context) Len() int {
	return len(c.payload)
}

// Values returns a shallow copy of all stored values
func (c *Context) Values() map[string]interface{} {
	result := make(map[string]interface{}, len(c.payload))
	for k, v := range c.payload {
		result[k] = v
	}
	return result
}

// GetString retrieves a value as a string
func (c *Context) GetString(key string) (string, error) {
	value, err := c.Get(key)
	if err != nil {
		return "", err
	}
	ret, ok := value.(string)
	if !ok {
		return "", newTypeMismatchError(key, "string", value, nil)
	}
	return ret, nil
}

// GetInt retrieves a value as an int
func (c *Context) GetInt(key string) (int, error) {
	value, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	ret, ok := value.(int)
	if !ok {
		return 0, newTypeMismatchError(key, "int", value, nil)
	}
	return ret, nil
}

// GetBool retrieves a value as a bool
func (c *Context) GetBool(key string) (bool, error) {
	value, err := c.Get(key)
	if err != nil {
		return false, err
	}
	ret, ok := value.(bool)
	if !ok {
		return false, newTypeMismatchError(key, "bool", value, nil)
	}
	return ret, nil
}

// NewContext creates a context adopting a shallow copy of initial
func NewContext(initial map[string]interface{}, opts ...Option) *Context {
	ret := &Context{
		payload: make(map[string]interface{}, len(initial)),
		keys:    make([]string, 0, len(initial)),
	}
	for k, v := range initial {
		ret.payload[k] = v
		ret.keys = append(ret.keys, k)
	}
	sort.Strings(ret.keys)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.converter == nil {
		ret.converter = conv.NewConverter(conv.DefaultOptions())
	}
	return ret
}
