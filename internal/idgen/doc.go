// Package idgen generates execution context identifiers. Callers should treat
// the identifiers as opaque strings.
package idgen
