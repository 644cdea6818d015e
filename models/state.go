package models

import (
	"github.com/algorand/go-algorand-sdk/types"
)

const (
	// MinResult is the minimum guess that can be submitted, inclusive.
	MinResult uint32 = 1
	// MaxResult is the maximum guess that can be submitted, inclusive.
	MaxResult uint32 = 10

	// RequestTimeoutSeconds is the minimum amount of time before a user can
	// re-guess if the previous guess hasn't settled.
	RequestTimeoutSeconds int64 = 60
)

// ProgramState is the global singleton of the callback variant. It pins the
// off-chain job every settlement must originate from.
type ProgramState struct {
	Authority types.Address `codec:"authority"`
	Job       types.Address `codec:"job"`
}

// UserState holds one user's pending guess and its last settled outcome.
// Deterministic addressing enforces one record per authority.
type UserState struct {
	Authority types.Address `codec:"authority"`
	// Instance is the job-instance bound to this user. The fire-and-forget
	// variant overwrites it on every guess with a fresh single-use instance.
	Instance types.Address `codec:"instance"`
	Guess    uint32        `codec:"guess"`
	Result   uint32        `codec:"result"`
	Won      bool          `codec:"won"`
	// unix seconds, zero until the first guess / until settlement
	RequestedAt int64 `codec:"requested_at"`
	SettledAt   int64 `codec:"settled_at"`
}

// Pending reports whether a guess was placed and has not settled yet.
func (u *UserState) Pending() bool {
	return u.RequestedAt > 0 && u.SettledAt == 0
}

// BoundedResult reduces a raw random value into the inclusive [min, max]
// range. Flipped bounds are swapped and equal bounds short-circuit, so the
// reduction is total for any input.
func BoundedResult(raw, min, max uint32) uint32 {
	if min > max {
		min, max = max, min
	}
	window := max - min + 1
	if window == 0 {
		// full u32 range, the raw value already is the result
		return raw
	}
	return min + raw%window
}
