package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for event write flows. Primary-step failures abort the
// operation; secondary-step failures surface as warnings on the outcome
// without unwinding the primary write.
var (
	// ErrStoreUnavailable indicates the store could not be reached at all.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCreateFailed indicates the event row insert was rejected.
	ErrCreateFailed = errors.New("event create failed")

	// ErrUpdateFailed indicates the event row update was rejected,
	// including ownership denial.
	ErrUpdateFailed = errors.New("event update failed")

	// ErrDeleteFailed indicates the event row delete was rejected,
	// including ownership denial.
	ErrDeleteFailed = errors.New("event delete failed")

	// ErrTagLinkFailed indicates no tags could be linked after an
	// otherwise-successful event write.
	ErrTagLinkFailed = errors.New("tag linking failed")

	// ErrImageCleanupFailed indicates a stale image could not be removed.
	// Always warning-level; the event write it followed already succeeded.
	ErrImageCleanupFailed = errors.New("image cleanup failed")
)

// PartialLinkError reports that tag reconciliation aborted after linking
// some but not all of the requested tags. Links already made are kept.
type PartialLinkError struct {
	Linked    int   // Tags successfully linked before the failure
	Requested int   // Tags requested
	Err       error // The failure that stopped processing
}

func (e *PartialLinkError) Error() string {
	return fmt.Sprintf("linked %d of %d tags: %v", e.Linked, e.Requested, e.Err)
}

func (e *PartialLinkError) Unwrap() error { return e.Err }
