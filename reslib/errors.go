package reslib

import "github.com/pkg/errors"

// ErrAllocationFailed is returned by New and NewOwnedStringID when the
// initial bucket array, or an owned string identifier's backing copy,
// cannot be allocated. It is the only error channel the core exposes:
// everything else (Duplicate, not-present) is an ordinary return value,
// not an error, per the Add/Lookup/Remove contracts in table.go.
var ErrAllocationFailed = errors.New("reslib: allocation failed")

// wrapAlloc annotates ErrAllocationFailed with call-site context without
// losing errors.Is/As compatibility with the sentinel.
func wrapAlloc(context string) error {
	return errors.Wrap(ErrAllocationFailed, context)
}
