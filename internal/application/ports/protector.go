package ports

import "github.com/Feng94/lighthouse/internal/application/domain"

// ProposalProtector guards block production against slashable proposals.
// The producer consults IsSafeToPropose before signing and calls
// CommitProposal once a signature has actually been obtained, before the
// block is published. Implementations keep a per-pubkey signing history.
type ProposalProtector interface {
	// IsSafeToPropose reports whether signing the proposal would be safe
	// given the recorded history.
	IsSafeToPropose(pubkey domain.Pubkey, slot domain.Slot, signingRoot domain.Root) bool

	// CommitProposal records a signed proposal so future IsSafeToPropose
	// calls see it. A failure here aborts publication.
	CommitProposal(pubkey domain.Pubkey, slot domain.Slot, signingRoot domain.Root) error
}
