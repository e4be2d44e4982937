package domain

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/huandu/go-clone"
)

// BeaconBlock is a candidate block as handed out by the beacon node. The
// Signature field stays at the placeholder value until the safety gate has
// passed and the signer has produced a real signature.
type BeaconBlock struct {
	Slot          Slot
	ProposerIndex ValidatorIndex
	ParentRoot    Root
	StateRoot     Root
	Body          BlockBody
	Signature     Signature
}

// BlockBody carries the block content the producer cares about. The beacon
// node keeps the full wire-level body; this is the projection whose structural
// root the validator commits to.
type BlockBody struct {
	RandaoReveal Signature
	Eth1Data     Eth1Data
	Graffiti     [32]byte
}

type Eth1Data struct {
	DepositRoot  Root
	DepositCount uint64
	BlockHash    [32]byte
}

// ProposalSignedData is the ephemeral record hashed to obtain the signing
// root. It is built per signing attempt and never persisted.
type ProposalSignedData struct {
	Slot      Slot
	Shard     uint64
	BlockRoot Root
}

// Copy returns a deep copy of the block.
func (b *BeaconBlock) Copy() *BeaconBlock {
	return clone.Clone(b).(*BeaconBlock)
}

// HashTreeRoot returns the canonical structural root of the block, signature
// field included. Callers that want a signature-independent root overwrite
// the signature with the empty sentinel first.
func (b *BeaconBlock) HashTreeRoot() (Root, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	hh.PutUint64(uint64(b.Slot))
	hh.PutUint64(uint64(b.ProposerIndex))
	hh.PutBytes(b.ParentRoot[:])
	hh.PutBytes(b.StateRoot[:])
	b.Body.hashTreeRootWith(hh)
	hh.PutBytes(b.Signature[:])
	hh.Merkleize(indx)

	root, err := hh.HashRoot()
	return Root(root), err
}

func (b *BlockBody) hashTreeRootWith(hh *ssz.Hasher) {
	indx := hh.Index()
	hh.PutBytes(b.RandaoReveal[:])
	b.Eth1Data.hashTreeRootWith(hh)
	hh.PutBytes(b.Graffiti[:])
	hh.Merkleize(indx)
}

func (e *Eth1Data) hashTreeRootWith(hh *ssz.Hasher) {
	indx := hh.Index()
	hh.PutBytes(e.DepositRoot[:])
	hh.PutUint64(e.DepositCount)
	hh.PutBytes(e.BlockHash[:])
	hh.Merkleize(indx)
}

// HashTreeRoot returns the signing root for the proposal. Hashing the
// proposal record rather than the block itself gives a second,
// domain-separated hash, so the signature never covers itself.
func (p *ProposalSignedData) HashTreeRoot() (Root, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	hh.PutUint64(uint64(p.Slot))
	hh.PutUint64(p.Shard)
	hh.PutBytes(p.BlockRoot[:])
	hh.Merkleize(indx)

	root, err := hh.HashRoot()
	return Root(root), err
}
