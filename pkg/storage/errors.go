package storage

import "errors"

// ErrPoolNotFound is returned when no pool exists with the given id.
var ErrPoolNotFound = errors.New("pool not found")

// ErrPoolExists is returned when creating a pool whose id is already taken.
var ErrPoolExists = errors.New("pool already exists")

// ErrVersionConflict is returned when a conditional write loses to a
// concurrent writer. Callers should re-read and re-validate before retrying,
// never resubmit the stale state.
var ErrVersionConflict = errors.New("pool version conflict")

// ErrMemberNotFound is returned when a pool has no member with the given id.
var ErrMemberNotFound = errors.New("member not found")

// ErrDuplicateContribution is returned when a contribution is recorded twice
// for the same member and round.
var ErrDuplicateContribution = errors.New("contribution already recorded for this round")
