package ports

import "github.com/Feng94/lighthouse/internal/application/domain"

// DutiesReader is the producer's read-only view of the shared duties map,
// populated out-of-band by the duties manager.
type DutiesReader interface {
	// IsProductionSlot reports whether the validator must produce a block at
	// the slot. Fails with domain.ErrUnknownEpoch while the epoch is still
	// unresolved and with domain.ErrDutiesPoisoned after a writer crash.
	IsProductionSlot(epoch domain.Epoch, slot domain.Slot) (bool, error)
}

// DutiesWriter is the duties manager's side of the shared map.
type DutiesWriter interface {
	// SetProductionSlot marks the epoch resolved with a proposal at slot.
	SetProductionSlot(epoch domain.Epoch, slot domain.Slot)

	// MarkNoProposal marks the epoch resolved with no proposal duty.
	MarkNoProposal(epoch domain.Epoch)
}
