// Package sentinel defines the errors stores report. Stores return these
// (optionally wrapped) so use cases can translate them into the user-facing
// failure taxonomy without knowing which backend produced them.
//
// These are factual states about storage, not validation failures:
//   - ErrNotFound: no row matches the lookup key
//   - ErrDuplicate: a uniqueness constraint rejected the write
//   - ErrUnavailable: the backend could not serve the call at all
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("duplicate")
	ErrUnavailable = errors.New("unavailable")
)
