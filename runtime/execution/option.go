package execution

import (
	"github.com/viant/structology/conv"
)

type Option func(c *Context)

// WithID sets the context identifier
func WithID(id string) Option {
	return func(c *Context) {
		c.ID = id
	}
}

// WithConverter sets the converter used to fit added elements into typed containers
func WithConverter(converter *conv.Converter) Option {
	return func(c *Context) {
		c.converter = converter
	}
}

// WithStateListeners attaches listeners to the created context.
// The slice is copied; callers can reuse their backing array.
func WithStateListeners(listeners ...StateListener) Option {
	return func(c *Context) {
		c.RegisterListeners(listeners...)
	}
}
