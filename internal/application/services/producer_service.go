package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Feng94/lighthouse/internal/application/domain"
	"github.com/Feng94/lighthouse/internal/logger"
)

// ProducerService drives one BlockProducer from a periodic ticker, one
// instance per validator key. Stopping is external: cancel the context.
type ProducerService struct {
	Producer     *BlockProducer
	PollInterval time.Duration
}

// Run polls until the context is cancelled or the producer reports a fault
// that cannot recover within this process (poisoned shared state, broken
// configuration). If at interval the previous poll has not ended, the tick is
// simply the next loop iteration; polls never overlap.
func (s *ProducerService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if fatal := s.pollOnce(ctx); fatal {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *ProducerService) pollOnce(ctx context.Context) (fatal bool) {
	outcome, err := s.Producer.Poll(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnknowable):
			// Expected before genesis; keep polling.
			logger.Debug("Current slot unknowable: %v", err)
		case errors.Is(err, domain.ErrClockPoisoned),
			errors.Is(err, domain.ErrDutiesPoisoned),
			errors.Is(err, domain.ErrEpochLengthZero):
			// Another component already failed, or the setup is broken.
			// Retrying cannot help; stop this producer.
			logger.Error("Fatal producer fault, stopping: %v", err)
			return true
		default:
			// Node faults are presumed retriable at a later slot.
			logger.Error("Producer poll failed: %v", err)
		}
		return false
	}

	switch outcome.Kind {
	case domain.BlockProduced:
		logger.Info("✅ Block produced and published for slot %d", outcome.Slot)
	case domain.SlashableBlockNotProduced:
		logger.Warn("❌ Refused slashable block at slot %d", outcome.Slot)
	case domain.SignerRejection:
		logger.Warn("Signer declined to sign block for slot %d", outcome.Slot)
	case domain.BeaconNodeUnableToProduceBlock:
		logger.Warn("Beacon node could not produce a block for slot %d", outcome.Slot)
	case domain.ProducerDutiesUnknown:
		logger.Debug("Duties not yet known at slot %d", outcome.Slot)
	default:
		logger.Debug("Nothing to do at slot %d: %s", outcome.Slot, outcome.Kind)
	}
	return false
}
