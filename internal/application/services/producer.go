package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Feng94/lighthouse/internal/application/domain"
	"github.com/Feng94/lighthouse/internal/application/ports"
	"github.com/Feng94/lighthouse/internal/logger"
)

// BlockProducer is a polling state machine that performs block production
// duties for a single validator key, based upon the shared duties map and a
// shared concept of time. It relies on an external duties manager to keep the
// map updated and on an external loop (ProducerService) to drive Poll.
//
// Poll mutates lastProcessedSlot without internal locking; callers must
// serialize polls per instance.
type BlockProducer struct {
	spec       *domain.ChainSpec
	pubkey     domain.Pubkey
	slotClock  ports.SlotClock
	duties     ports.DutiesReader
	beaconNode ports.BeaconNode
	signer     ports.Signer
	protector  ports.ProposalProtector

	// lastProcessedSlot only ever increases. It is advanced the moment
	// production is judged required, before production is attempted, so a
	// failed attempt is not retried on the next poll.
	lastProcessedSlot domain.Slot
}

// NewBlockProducer constructs a producer with lastProcessedSlot == 0.
func NewBlockProducer(
	spec *domain.ChainSpec,
	pubkey domain.Pubkey,
	slotClock ports.SlotClock,
	duties ports.DutiesReader,
	beaconNode ports.BeaconNode,
	signer ports.Signer,
	protector ports.ProposalProtector,
) *BlockProducer {
	return &BlockProducer{
		spec:       spec,
		pubkey:     pubkey,
		slotClock:  slotClock,
		duties:     duties,
		beaconNode: beaconNode,
		signer:     signer,
		protector:  protector,
	}
}

// LastProcessedSlot returns the highest slot at which production was required
// and attempted.
func (p *BlockProducer) LastProcessedSlot() domain.Slot {
	return p.lastProcessedSlot
}

// Poll reads the clock and undertakes any action the current slot requires.
// It returns exactly one outcome from the closed set, or a fatal error.
func (p *BlockProducer) Poll(ctx context.Context) (domain.PollOutcome, error) {
	slot, err := p.slotClock.CurrentSlot()
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnknowable) || errors.Is(err, domain.ErrClockPoisoned) {
			return domain.PollOutcome{}, err
		}
		return domain.PollOutcome{}, errors.Wrap(err, "reading slot clock")
	}

	if p.spec.EpochLength == 0 {
		return domain.PollOutcome{}, domain.ErrEpochLengthZero
	}
	epoch := slot.Epoch(p.spec.EpochLength)

	if slot <= p.lastProcessedSlot {
		return domain.PollOutcome{Kind: domain.SlotAlreadyProcessed, Slot: slot}, nil
	}

	isProductionSlot, err := p.duties.IsProductionSlot(epoch, slot)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownEpoch):
			// The slot stays unprocessed so it may be re-evaluated while it
			// is still current. Once the clock moves past it the miss is
			// permanent; there is no catch-up for missed slots.
			return domain.PollOutcome{Kind: domain.ProducerDutiesUnknown, Slot: slot}, nil
		case errors.Is(err, domain.ErrDutiesPoisoned):
			return domain.PollOutcome{}, err
		default:
			return domain.PollOutcome{}, errors.Wrap(err, "consulting duties")
		}
	}

	if !isProductionSlot {
		// Only a required-and-attempted slot is recorded as processed.
		return domain.PollOutcome{Kind: domain.BlockProductionNotRequired, Slot: slot}, nil
	}

	p.lastProcessedSlot = slot
	return p.produceBlock(ctx, slot)
}

// produceBlock requests a candidate, gates it, signs it and publishes it.
// Assumes the duties check has already passed for the slot.
func (p *BlockProducer) produceBlock(ctx context.Context, slot domain.Slot) (domain.PollOutcome, error) {
	block, err := p.beaconNode.ProduceBlock(ctx, slot)
	if err != nil {
		return domain.PollOutcome{}, errors.Wrap(err, "beacon node failed to produce")
	}
	if block == nil {
		return domain.PollOutcome{Kind: domain.BeaconNodeUnableToProduceBlock, Slot: slot}, nil
	}

	signingRoot, err := p.signingRoot(block)
	if err != nil {
		return domain.PollOutcome{}, errors.Wrap(err, "computing signing root")
	}

	if !p.protector.IsSafeToPropose(p.pubkey, block.Slot, signingRoot) {
		return domain.PollOutcome{Kind: domain.SlashableBlockNotProduced, Slot: slot}, nil
	}

	signature, err := p.signer.Sign(signingRoot)
	if err != nil {
		logger.Debug("Signer declined proposal for slot %d: %v", slot, err)
		return domain.PollOutcome{Kind: domain.SignerRejection, Slot: slot}, nil
	}

	// Record only after a signature exists; an unsigned attempt leaves no
	// history behind.
	if err := p.protector.CommitProposal(p.pubkey, block.Slot, signingRoot); err != nil {
		return domain.PollOutcome{}, errors.Wrap(err, "recording signed proposal")
	}

	signed := *block
	signed.Signature = signature
	accepted, err := p.beaconNode.PublishBlock(ctx, &signed)
	if err != nil {
		return domain.PollOutcome{}, errors.Wrap(err, "beacon node failed to publish")
	}
	if !accepted {
		logger.Warn("Beacon node did not accept block for slot %d", slot)
	}
	return domain.PollOutcome{Kind: domain.BlockProduced, Slot: slot}, nil
}

// signingRoot derives the proposal signing root for a candidate block: the
// canonical root of the block with its signature replaced by the empty
// sentinel, wrapped in a proposal record and hashed again. The candidate
// itself is left untouched.
func (p *BlockProducer) signingRoot(block *domain.BeaconBlock) (domain.Root, error) {
	unsigned := block.Copy()
	unsigned.Signature = p.spec.EmptySignature
	blockRoot, err := unsigned.HashTreeRoot()
	if err != nil {
		return domain.Root{}, err
	}

	proposal := domain.ProposalSignedData{
		Slot:      block.Slot,
		Shard:     p.spec.BeaconChainShardNumber,
		BlockRoot: blockRoot,
	}
	return proposal.HashTreeRoot()
}
