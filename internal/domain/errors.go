// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a state precondition was violated (unit already
// occupied, payment already decided, duplicate pending payment).
var ErrConflict = errors.New("conflict: state precondition violated")

// ErrForbidden indicates the caller lacks ownership of or role access to
// the target resource.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates malformed input.
var ErrValidation = errors.New("validation")

// ErrStore indicates a storage-level failure (connection loss, constraint
// violation outside the modeled conflicts). The triggering transaction is
// rolled back; no partial writes are retained.
var ErrStore = errors.New("store failure")
