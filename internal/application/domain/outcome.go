package domain

// PollOutcomeKind enumerates every way a poll can conclude without a fault.
// The set is closed: consumers switch over it exhaustively.
type PollOutcomeKind int

const (
	// BlockProduced means a new block was signed and published.
	BlockProduced PollOutcomeKind = iota
	// SlashableBlockNotProduced means the safety gate refused the candidate.
	SlashableBlockNotProduced
	// BlockProductionNotRequired means the duties did not require a block.
	BlockProductionNotRequired
	// ProducerDutiesUnknown means the duties for the epoch are not resolved yet.
	ProducerDutiesUnknown
	// SlotAlreadyProcessed means the slot was handled earlier and was skipped.
	SlotAlreadyProcessed
	// BeaconNodeUnableToProduceBlock means the node had no candidate for the slot.
	BeaconNodeUnableToProduceBlock
	// SignerRejection means the signer declined to sign the proposal.
	SignerRejection
)

func (k PollOutcomeKind) String() string {
	switch k {
	case BlockProduced:
		return "block produced"
	case SlashableBlockNotProduced:
		return "slashable block not produced"
	case BlockProductionNotRequired:
		return "block production not required"
	case ProducerDutiesUnknown:
		return "producer duties unknown"
	case SlotAlreadyProcessed:
		return "slot already processed"
	case BeaconNodeUnableToProduceBlock:
		return "beacon node unable to produce block"
	case SignerRejection:
		return "signer rejection"
	default:
		return "unknown outcome"
	}
}

// PollOutcome is the result of a single producer poll, tagged with the slot
// it applies to.
type PollOutcome struct {
	Kind PollOutcomeKind
	Slot Slot
}
