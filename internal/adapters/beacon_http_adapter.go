package adapters

import (
	"context"
	"sync"
	"time"

	nethttp "net/http"

	"github.com/attestantio/go-eth2-client/api"
	apiv1 "github.com/attestantio/go-eth2-client/api/v1"
	eth2http "github.com/attestantio/go-eth2-client/http"
	"github.com/attestantio/go-eth2-client/spec"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// beaconHTTPClient implements ports.BeaconNode and ports.ProposerDutiesProvider
// using go-eth2-client.
//
// The domain block is a projection of the full wire-level block, so produced
// candidates are parked in `pending` until they come back signed for
// publication.
type beaconHTTPClient struct {
	client *eth2http.Service

	mu      sync.Mutex
	pending map[domain.Slot]*phase0.BeaconBlock
}

// NewBeaconHTTPAdapter is the constructor used from main.go.
func NewBeaconHTTPAdapter(endpoint string) (*beaconHTTPClient, error) {
	// Silence go-eth2-client logs unless they are warnings+.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	customHTTPClient := &nethttp.Client{
		Timeout: 2000 * time.Second, // global upper bound; per-request timeout below
	}

	client, err := eth2http.New(
		context.Background(),
		eth2http.WithAddress(endpoint),
		eth2http.WithHTTPClient(customHTTPClient),
		// This is the per-request timeout used by go-eth2-client.
		eth2http.WithTimeout(20*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &beaconHTTPClient{
		client:  client.(*eth2http.Service),
		pending: make(map[domain.Slot]*phase0.BeaconBlock),
	}, nil
}

// ProduceBlock requests a candidate proposal for the slot. A node that cannot
// serve one right now (syncing, no head) maps to a nil candidate.
func (b *beaconHTTPClient) ProduceBlock(ctx context.Context, slot domain.Slot) (*domain.BeaconBlock, error) {
	// The local signer does not produce real randao reveals, so ask the node
	// to skip verification; the point-at-infinity signature marks that.
	var randao phase0.BLSSignature
	randao[0] = 0xc0

	resp, err := b.client.Proposal(ctx, &api.ProposalOpts{
		Slot:                   phase0.Slot(slot),
		RandaoReveal:           randao,
		Graffiti:               graffiti(),
		SkipRandaoVerification: true,
	})
	if err != nil {
		// Node not ready → no candidate, not a fault.
		if apiErr, ok := err.(*api.Error); ok && apiErr.StatusCode == 503 {
			return nil, nil
		}
		return nil, err
	}
	if resp == nil || resp.Data == nil {
		return nil, nil
	}
	if resp.Data.Phase0 == nil {
		return nil, errors.Errorf("unsupported proposal version %v", resp.Data.Version)
	}

	full := resp.Data.Phase0
	b.mu.Lock()
	b.pending[slot] = full
	b.mu.Unlock()

	candidate := &domain.BeaconBlock{
		Slot:          domain.Slot(full.Slot),
		ProposerIndex: domain.ValidatorIndex(full.ProposerIndex),
		ParentRoot:    domain.Root(full.ParentRoot),
		StateRoot:     domain.Root(full.StateRoot),
	}
	if full.Body != nil {
		candidate.Body.RandaoReveal = domain.Signature(full.Body.RANDAOReveal)
		candidate.Body.Graffiti = full.Body.Graffiti
		if full.Body.ETH1Data != nil {
			candidate.Body.Eth1Data.DepositRoot = domain.Root(full.Body.ETH1Data.DepositRoot)
			candidate.Body.Eth1Data.DepositCount = full.Body.ETH1Data.DepositCount
			copy(candidate.Body.Eth1Data.BlockHash[:], full.Body.ETH1Data.BlockHash)
		}
	}
	return candidate, nil
}

// PublishBlock submits the signed block by re-attaching the signature to the
// full candidate produced earlier for the same slot.
func (b *beaconHTTPClient) PublishBlock(ctx context.Context, block *domain.BeaconBlock) (bool, error) {
	b.mu.Lock()
	full, ok := b.pending[block.Slot]
	delete(b.pending, block.Slot)
	b.mu.Unlock()
	if !ok {
		return false, errors.Errorf("no pending candidate for slot %d", block.Slot)
	}

	signed := &phase0.SignedBeaconBlock{
		Message:   full,
		Signature: phase0.BLSSignature(block.Signature),
	}
	err := b.client.SubmitProposal(ctx, &api.SubmitProposalOpts{
		Proposal: &api.VersionedSignedProposal{
			Version: spec.DataVersionPhase0,
			Phase0:  signed,
		},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ProposerSlot returns the slot the validator proposes at in the epoch, if any.
func (b *beaconHTTPClient) ProposerSlot(
	ctx context.Context,
	epoch domain.Epoch,
	index domain.ValidatorIndex,
) (domain.Slot, bool, error) {
	resp, err := b.client.ProposerDuties(ctx, &api.ProposerDutiesOpts{
		Epoch:   phase0.Epoch(epoch),
		Indices: []phase0.ValidatorIndex{phase0.ValidatorIndex(index)},
	})
	if err != nil {
		return 0, false, err
	}

	for _, d := range resp.Data {
		if domain.ValidatorIndex(d.ValidatorIndex) == index {
			return domain.Slot(d.Slot), true, nil
		}
	}
	return 0, false, nil
}

// ValidatorIndex resolves a validator pubkey to its index on the head state.
func (b *beaconHTTPClient) ValidatorIndex(ctx context.Context, pubkey domain.Pubkey) (domain.ValidatorIndex, error) {
	validators, err := b.client.Validators(ctx, &api.ValidatorsOpts{
		State:   "head",
		PubKeys: []phase0.BLSPubKey{phase0.BLSPubKey(pubkey)},
		ValidatorStates: []apiv1.ValidatorState{
			apiv1.ValidatorStateActiveOngoing,
			apiv1.ValidatorStateActiveExiting,
			apiv1.ValidatorStateActiveSlashed,
		},
	})
	if err != nil {
		return 0, err
	}

	for _, v := range validators.Data {
		return domain.ValidatorIndex(v.Index), nil
	}
	return 0, errors.New("validator not found on head state")
}

func graffiti() [32]byte {
	var g [32]byte
	copy(g[:], "lighthouse")
	return g
}
