package domain

import "math"

// ChainSpec holds the static protocol parameters shared by every component.
// It is never mutated after construction.
type ChainSpec struct {
	// EpochLength is the number of slots per epoch.
	EpochLength uint64 `yaml:"epoch_length"`

	// SlotDuration is the length of a slot in seconds.
	SlotDuration uint64 `yaml:"slot_duration"`

	// GenesisTime is the chain start as a unix timestamp in seconds.
	GenesisTime uint64 `yaml:"genesis_time"`

	// BeaconChainShardNumber is the shard identifier carried by proposal
	// records when deriving signing roots.
	BeaconChainShardNumber uint64 `yaml:"beacon_chain_shard_number"`

	// EmptySignature is the placeholder written into a block's signature
	// field before its canonical root is computed.
	EmptySignature Signature `yaml:"-"`
}

// FoundationSpec returns the default parameter set.
func FoundationSpec() *ChainSpec {
	return &ChainSpec{
		EpochLength:            64,
		SlotDuration:           6,
		GenesisTime:            1544672897,
		BeaconChainShardNumber: math.MaxUint64,
		EmptySignature:         Signature{},
	}
}
