package adapters

import (
	"sync"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// EpochDuty is one resolved epoch entry: at most one proposal slot per epoch
// for the validator the map belongs to.
type EpochDuty struct {
	Slot        domain.Slot
	HasProposal bool
}

// EpochDutiesMap is the shared duties table for a single validator. The
// duties manager writes, the block producer reads. A writer that panics while
// holding the lock poisons the map: every later read fails with
// domain.ErrDutiesPoisoned rather than serving possibly half-written state.
type EpochDutiesMap struct {
	mu       sync.RWMutex
	poisoned bool
	duties   map[domain.Epoch]EpochDuty
}

func NewEpochDutiesMap() *EpochDutiesMap {
	return &EpochDutiesMap{duties: make(map[domain.Epoch]EpochDuty)}
}

// IsProductionSlot implements ports.DutiesReader.
func (m *EpochDutiesMap) IsProductionSlot(epoch domain.Epoch, slot domain.Slot) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.poisoned {
		return false, domain.ErrDutiesPoisoned
	}
	duty, ok := m.duties[epoch]
	if !ok {
		return false, domain.ErrUnknownEpoch
	}
	return duty.HasProposal && duty.Slot == slot, nil
}

// SetProductionSlot implements ports.DutiesWriter.
func (m *EpochDutiesMap) SetProductionSlot(epoch domain.Epoch, slot domain.Slot) {
	m.Update(func(duties map[domain.Epoch]EpochDuty) {
		duties[epoch] = EpochDuty{Slot: slot, HasProposal: true}
	})
}

// MarkNoProposal implements ports.DutiesWriter.
func (m *EpochDutiesMap) MarkNoProposal(epoch domain.Epoch) {
	m.Update(func(duties map[domain.Epoch]EpochDuty) {
		duties[epoch] = EpochDuty{}
	})
}

// Update runs fn against the duties table under the write lock. A panic
// inside fn marks the map poisoned before propagating.
func (m *EpochDutiesMap) Update(fn func(duties map[domain.Epoch]EpochDuty)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			m.poisoned = true
			panic(r)
		}
	}()
	fn(m.duties)
}
