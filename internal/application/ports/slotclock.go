package ports

import "github.com/Feng94/lighthouse/internal/application/domain"

// SlotClock reports the current slot. Implementations are shared with a
// time-advancing component; the producer only ever reads.
type SlotClock interface {
	// CurrentSlot fails with domain.ErrSlotUnknowable when "now" cannot be
	// mapped to a slot, with domain.ErrClockPoisoned after a writer crash,
	// and with any other error on an internal clock fault.
	CurrentSlot() (domain.Slot, error)
}
