package services

import (
	"context"
	"time"

	"github.com/Feng94/lighthouse/internal/application/domain"
	"github.com/Feng94/lighthouse/internal/application/ports"
	"github.com/Feng94/lighthouse/internal/logger"
)

// DutiesManager keeps the shared duties map resolved for the current epoch of
// one validator. Discovery itself lives behind the ProposerDutiesProvider
// port; the manager only copies its answer into the map the producer reads.
type DutiesManager struct {
	Index        domain.ValidatorIndex
	Spec         *domain.ChainSpec
	SlotClock    ports.SlotClock
	Duties       ports.DutiesWriter
	Provider     ports.ProposerDutiesProvider
	PollInterval time.Duration

	resolvedEpoch domain.Epoch
	resolvedAny   bool
}

// Run resolves duties until the context is cancelled.
func (m *DutiesManager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.resolveCurrentEpoch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *DutiesManager) resolveCurrentEpoch(ctx context.Context) {
	slot, err := m.SlotClock.CurrentSlot()
	if err != nil {
		logger.Debug("Duties manager cannot read the clock: %v", err)
		return
	}
	if m.Spec.EpochLength == 0 {
		logger.Error("Duties manager halted: epoch length is zero")
		return
	}
	epoch := slot.Epoch(m.Spec.EpochLength)
	if m.resolvedAny && epoch == m.resolvedEpoch {
		return
	}

	dutySlot, hasDuty, err := m.Provider.ProposerSlot(ctx, epoch, m.Index)
	if err != nil {
		// Retriable on the next tick.
		logger.Warn("Could not resolve proposer duties for epoch %d: %v", epoch, err)
		return
	}

	if hasDuty {
		m.Duties.SetProductionSlot(epoch, dutySlot)
		logger.Info("Validator %d proposes at slot %d in epoch %d", m.Index, dutySlot, epoch)
	} else {
		m.Duties.MarkNoProposal(epoch)
		logger.Debug("Validator %d has no proposal duty in epoch %d", m.Index, epoch)
	}
	m.resolvedEpoch = epoch
	m.resolvedAny = true
}
