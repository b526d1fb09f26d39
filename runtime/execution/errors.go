package execution

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below match them through errors.Is so callers
// can branch on the kind and still reach key details with errors.As.
var (
	// ErrMissingKey is returned when a key is not present in the context.
	ErrMissingKey = errors.New("execution: missing key")

	// ErrNotArray indicates that the value at a key is neither a sequence nor
	// a string keyed map.
	ErrNotArray = errors.New("execution: not an array")

	// ErrTypeMismatch is returned when a value cannot be stored as, or read
	// as, the required type.
	ErrTypeMismatch = errors.New("execution: type mismatch")

	// ErrInvalidIndex is returned when a sub-key cannot address a sequence.
	ErrInvalidIndex = errors.New("execution: invalid index")
)

// MissingKeyError reports a lookup of a key that was never set, together with
// the keys present at the time of the call.
type MissingKeyError struct {
	Key  string
	Keys []string
	add  bool
}

func (e *MissingKeyError) Error() string {
	if e.add {
		return fmt.Sprintf("can't add inner element to data, %q missed in context", e.Key)
	}
	return fmt.Sprintf("the data %q missed in context. Possible keys are \"%s\".", e.Key, strings.Join(e.Keys, `", "`))
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrMissingKey }

// NotArrayError reports an Add on a value that cannot hold elements.
type NotArrayError struct {
	Key  string
	Type string
}

func (e *NotArrayError) Error() string {
	return fmt.Sprintf("can't add inner element to data, %q is not an array (%s)", e.Key, e.Type)
}

func (e *NotArrayError) Is(target error) bool { return target == ErrNotArray }

// TypeMismatchError reports a value that does not fit the expected type.
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
	Err      error
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("value at %q: expected %s, but had %s", e.Key, e.Expected, e.Actual)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func (e *TypeMismatchError) Unwrap() error { return e.Err }

// IndexError reports a sub-key that does not address a position in a sequence.
type IndexError struct {
	Key   string
	Inner string
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("can't add inner element to data, %q: index %q out of range [0:%d]", e.Key, e.Inner, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrInvalidIndex }

func newMissingKeyError(key string, keys []string, add bool) error {
	return &MissingKeyError{Key: key, Keys: append([]string(nil), keys...), add: add}
}

func newTypeMismatchError(key string, expected string, value interface{}, err error) error {
	return &TypeMismatchError{Key: key, Expected: expected, Actual: fmt.Sprintf("%T", value), Err: err}
}
