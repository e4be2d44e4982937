package ports

import (
	"context"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// BeaconNode is the hexagonal port for the block-producing beacon node.
// The producer depends only on this interface, not on any concrete client.
type BeaconNode interface {
	// ProduceBlock asks the node for a candidate block at the slot. A nil
	// block with a nil error means the node is not ready to produce; any
	// error is a node/transport fault.
	ProduceBlock(ctx context.Context, slot domain.Slot) (*domain.BeaconBlock, error)

	// PublishBlock submits a signed block. The flag reports whether the node
	// accepted the block for broadcast.
	PublishBlock(ctx context.Context, block *domain.BeaconBlock) (bool, error)
}

// ProposerDutiesProvider answers which slot, if any, a validator proposes in
// during an epoch. It backs the duties manager, never the producer directly.
type ProposerDutiesProvider interface {
	ProposerSlot(ctx context.Context, epoch domain.Epoch, index domain.ValidatorIndex) (domain.Slot, bool, error)
}
