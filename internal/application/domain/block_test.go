package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlock() *BeaconBlock {
	block := &BeaconBlock{Slot: 100, ProposerIndex: 7}
	copy(block.ParentRoot[:], "parent")
	copy(block.StateRoot[:], "state")
	copy(block.Body.Graffiti[:], "graffiti")
	block.Body.Eth1Data.DepositCount = 12
	return block
}

func TestBlockHashTreeRootIsContentSensitive(t *testing.T) {
	a := sampleBlock()
	rootA, err := a.HashTreeRoot()
	require.NoError(t, err)

	rootAgain, err := a.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, rootA, rootAgain)

	b := sampleBlock()
	copy(b.Body.Graffiti[:], "different")
	rootB, err := b.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, rootA, rootB)

	c := sampleBlock()
	copy(c.Signature[:], "a signature")
	rootC, err := c.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, rootA, rootC, "the root covers the signature field")
}

func TestProposalRootDiffersFromBlockRoot(t *testing.T) {
	block := sampleBlock()
	blockRoot, err := block.HashTreeRoot()
	require.NoError(t, err)

	proposal := ProposalSignedData{Slot: block.Slot, Shard: 42, BlockRoot: blockRoot}
	signingRoot, err := proposal.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, blockRoot, signingRoot)

	// The shard context separates signing domains.
	otherShard := ProposalSignedData{Slot: block.Slot, Shard: 43, BlockRoot: blockRoot}
	otherRoot, err := otherShard.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, signingRoot, otherRoot)
}

func TestBlockCopyIsIndependent(t *testing.T) {
	original := sampleBlock()
	copied := original.Copy()
	require.Equal(t, original, copied)

	copied.Signature = Signature{1}
	copy(copied.Body.Graffiti[:], "mutated")
	assert.Equal(t, Signature{}, original.Signature)
	assert.NotEqual(t, original.Body.Graffiti, copied.Body.Graffiti)
}
