package domain

// Basic consensus types
type Epoch uint64
type Slot uint64
type ValidatorIndex uint64

// Root is a 32-byte structural hash.
type Root [32]byte

// Signature is a fixed-width signature container. A zeroed value is the
// "not signed yet" placeholder carried by candidate blocks.
type Signature [96]byte

// Pubkey identifies a validator key.
type Pubkey [48]byte

// Epoch returns the epoch the slot belongs to. epochLength must be nonzero;
// callers that take it from configuration check that first.
func (s Slot) Epoch(epochLength uint64) Epoch {
	return Epoch(uint64(s) / epochLength)
}
