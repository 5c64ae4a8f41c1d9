package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the invariant violations reported by named operations.
// Operations wrap them with context, so callers match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyClaimed     = errors.New("order already claimed")
	ErrNotClaimant        = errors.New("staff member is not the order claimant")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrNoOpenShift        = errors.New("no open shift")
	ErrBreakInProgress    = errors.New("break already in progress")
	ErrNoActiveBreak      = errors.New("no active break")
	ErrUnitMismatch       = errors.New("incompatible units")
	ErrPromotionInactive  = errors.New("promotion is not active")
	ErrPromotionNotValid  = errors.New("promotion does not apply to order")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrRewardUnavailable  = errors.New("loyalty reward unavailable")
	ErrStaleRevision      = errors.New("stale revision")
	ErrTableOccupied      = errors.New("table is occupied")
	ErrCapacityExceeded   = errors.New("party exceeds table capacity")
	ErrInactive           = errors.New("record is inactive")
	ErrAlreadySettled     = errors.New("order already settled")
	ErrInvalidInput       = errors.New("invalid input")
)

// NotFoundError reports a reference to an unknown id. Dangling references
// discovered while resolving derived computations are reported the same way.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is lets callers match any NotFoundError against ErrNotFound.
func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StaleRevisionError is returned when a full replace carries an outdated revision.
type StaleRevisionError struct {
	Entity   EntityType
	ID       string
	Expected uint64
	Actual   uint64
}

func (e StaleRevisionError) Error() string {
	return fmt.Sprintf("%s %q: revision %d is stale (current %d)", e.Entity, e.ID, e.Actual, e.Expected)
}

// Is lets callers match any StaleRevisionError against ErrStaleRevision.
func (e StaleRevisionError) Is(target error) bool {
	return target == ErrStaleRevision
}

// IsNotFound reports whether err denotes an unknown or dangling reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NotFoundEntity extracts the entity type of a not-found error.
func NotFoundEntity(err error) (EntityType, bool) {
	var nf NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity, true
	}
	return "", false
}
