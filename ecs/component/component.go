package component

import "errors"

var (
	// ErrMissingDependency marks a collaborator that could not be resolved at
	// construction. The owning component stays disabled.
	ErrMissingDependency = errors.New("outpost: missing dependency")
	// ErrTransientUnavailable marks a collaborator that is temporarily unusable.
	// The tick is skipped and retried on the next one.
	ErrTransientUnavailable = errors.New("outpost: transiently unavailable")
	// ErrInvalidOperation marks a request that was rejected without any state change.
	ErrInvalidOperation = errors.New("outpost: invalid operation")

	ErrNoWeapon     = errorf("no weapon equipped")
	ErrFullHealth   = errorf("already at full health")
	ErrMagazineFull = errorf("magazine already full")
	ErrOutOfAmmo    = errorf("magazine empty")
	ErrReserveFull  = errorf("ammo reserve already full")
	ErrNotReady     = errorf("weapon cooling down")
	ErrDead         = errorf("actor is dead")
	ErrNothingNear  = errorf("nothing to interact with")
)

type invalidOperation struct {
	msg string
}

func errorf(msg string) error {
	return &invalidOperation{msg: msg}
}

func (e *invalidOperation) Error() string {
	return "outpost: " + e.msg
}

func (e *invalidOperation) Unwrap() error {
	return ErrInvalidOperation
}

// ColliderID identifies a collision body for raycast hit resolution.
// Zero means "no collider".
type ColliderID uint64
