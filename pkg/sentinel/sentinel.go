package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrCorrupt: backing medium holds data the codec cannot decode
// - ErrUnavailable: backing medium temporarily unreadable or unwritable
//
// For validation errors (bad input, forbidden transitions), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrCorrupt     = errors.New("corrupt data")
	ErrUnavailable = errors.New("unavailable")
)
