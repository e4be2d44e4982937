package domain

import "github.com/pkg/errors"

// Fatal producer faults. Steady-state conditions (duties unknown, slot already
// handled, node not ready, signer declined, safety stop) are PollOutcomes, not
// errors; an error here means something in the process is broken.
var (
	// ErrSlotUnknowable means the clock cannot place "now" inside the chain's
	// slot schedule, e.g. before genesis.
	ErrSlotUnknowable = errors.New("current slot is unknowable")

	// ErrClockPoisoned means a writer failed while holding the slot clock lock.
	ErrClockPoisoned = errors.New("slot clock poisoned by a failed writer")

	// ErrDutiesPoisoned means a writer failed while holding the duties map lock.
	ErrDutiesPoisoned = errors.New("duties map poisoned by a failed writer")

	// ErrEpochLengthZero means the chain spec is mis-provisioned.
	ErrEpochLengthZero = errors.New("chain spec epoch length is zero")

	// ErrUnknownEpoch is returned by a duties source that has not resolved the
	// requested epoch yet. The producer maps it to ProducerDutiesUnknown.
	ErrUnknownEpoch = errors.New("duties for epoch are unknown")
)
