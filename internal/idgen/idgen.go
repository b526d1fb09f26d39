package idgen

import "github.com/google/uuid"

// NewFunc generates context identifiers. Override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique context identifier
func New() string { return NewFunc() }
