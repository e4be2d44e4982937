package adapters

import (
	"sync"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// ProposalHistory is an in-memory slashing-protection record keyed by
// validator pubkey. It refuses to clear a proposal that conflicts with one
// already signed: a different signing root at an already-signed slot, or any
// slot at or below the highest signed slot. Re-signing the identical proposal
// is allowed, since the resulting signature cannot conflict with itself.
//
// The history lives only as long as the process; durable storage is a
// deployment concern layered behind the same port.
type ProposalHistory struct {
	mu       sync.Mutex
	byPubkey map[domain.Pubkey]*signingHistory
}

type signingHistory struct {
	highestSlot domain.Slot
	roots       map[domain.Slot]domain.Root
}

func NewProposalHistory() *ProposalHistory {
	return &ProposalHistory{byPubkey: make(map[domain.Pubkey]*signingHistory)}
}

// IsSafeToPropose implements ports.ProposalProtector.
func (h *ProposalHistory) IsSafeToPropose(pubkey domain.Pubkey, slot domain.Slot, signingRoot domain.Root) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	hist, ok := h.byPubkey[pubkey]
	if !ok {
		return true
	}
	if existing, signed := hist.roots[slot]; signed {
		return existing == signingRoot
	}
	return slot > hist.highestSlot
}

// CommitProposal implements ports.ProposalProtector.
func (h *ProposalHistory) CommitProposal(pubkey domain.Pubkey, slot domain.Slot, signingRoot domain.Root) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	hist, ok := h.byPubkey[pubkey]
	if !ok {
		hist = &signingHistory{roots: make(map[domain.Slot]domain.Root)}
		h.byPubkey[pubkey] = hist
	}
	hist.roots[slot] = signingRoot
	if slot > hist.highestSlot {
		hist.highestSlot = slot
	}
	return nil
}
