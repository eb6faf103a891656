package app

import "errors"

// Sentinel errors surfaced across the service boundary. Not-found and
// conflict conditions are distinct so callers can tell "nothing to undo"
// from "already undone".
var (
	// ErrPlanNotFound: unknown, expired, or wrong-tenant stored plan.
	ErrPlanNotFound = errors.New("plan not found or expired")

	// ErrPlanRejected: the review step rejected this plan; it cannot be
	// applied.
	ErrPlanRejected = errors.New("plan was rejected by review")

	// ErrReconfigNotFound: unknown reconfiguration record or wrong tenant.
	ErrReconfigNotFound = errors.New("reconfiguration not found")

	// ErrAlreadyUndone: the reconfiguration was undone before.
	ErrAlreadyUndone = errors.New("reconfiguration already undone")

	// ErrNoAvailableRow: the physical grid is exhausted; an expand action
	// found no unassigned row.
	ErrNoAvailableRow = errors.New("no available row to allocate")

	// ErrIntegrity: a post-mutation invariant check failed; the enclosing
	// transaction was rolled back.
	ErrIntegrity = errors.New("integrity violation")
)
