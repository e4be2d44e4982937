package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feng94/lighthouse/internal/adapters"
	"github.com/Feng94/lighthouse/internal/application/domain"
)

type fakeDutiesProvider struct {
	calls int
	slot  domain.Slot
	has   bool
	err   error
}

func (f *fakeDutiesProvider) ProposerSlot(_ context.Context, _ domain.Epoch, _ domain.ValidatorIndex) (domain.Slot, bool, error) {
	f.calls++
	if f.err != nil {
		return 0, false, f.err
	}
	return f.slot, f.has, nil
}

func newManagerHarness(provider *fakeDutiesProvider) (*DutiesManager, *adapters.EpochDutiesMap, *adapters.SharedSlotClock) {
	duties := adapters.NewEpochDutiesMap()
	clock := adapters.NewSharedSlotClock(adapters.NewTestingClock(100))
	manager := &DutiesManager{
		Index:     7,
		Spec:      domain.FoundationSpec(),
		SlotClock: clock,
		Duties:    duties,
		Provider:  provider,
	}
	return manager, duties, clock
}

func TestDutiesManagerResolvesProposalSlot(t *testing.T) {
	provider := &fakeDutiesProvider{slot: 110, has: true}
	manager, duties, _ := newManagerHarness(provider)

	manager.resolveCurrentEpoch(context.Background())

	isSlot, err := duties.IsProductionSlot(1, 110)
	require.NoError(t, err)
	assert.True(t, isSlot)

	isSlot, err = duties.IsProductionSlot(1, 111)
	require.NoError(t, err)
	assert.False(t, isSlot)
}

func TestDutiesManagerMarksEpochWithoutProposal(t *testing.T) {
	provider := &fakeDutiesProvider{has: false}
	manager, duties, _ := newManagerHarness(provider)

	manager.resolveCurrentEpoch(context.Background())

	isSlot, err := duties.IsProductionSlot(1, 100)
	require.NoError(t, err)
	assert.False(t, isSlot)
}

func TestDutiesManagerResolvesEpochOnce(t *testing.T) {
	provider := &fakeDutiesProvider{slot: 110, has: true}
	manager, _, clock := newManagerHarness(provider)
	ctx := context.Background()

	manager.resolveCurrentEpoch(ctx)
	manager.resolveCurrentEpoch(ctx)
	assert.Equal(t, 1, provider.calls)

	// A new epoch triggers a fresh resolution.
	clock.Update(func(c adapters.Clock) {
		c.(*adapters.TestingClock).SetSlot(128)
	})
	manager.resolveCurrentEpoch(ctx)
	assert.Equal(t, 2, provider.calls)
}

func TestDutiesManagerRetriesAfterProviderFailure(t *testing.T) {
	provider := &fakeDutiesProvider{err: errors.New("node unavailable")}
	manager, duties, _ := newManagerHarness(provider)
	ctx := context.Background()

	manager.resolveCurrentEpoch(ctx)
	_, err := duties.IsProductionSlot(1, 100)
	require.ErrorIs(t, err, domain.ErrUnknownEpoch)

	provider.err = nil
	provider.slot = 110
	provider.has = true
	manager.resolveCurrentEpoch(ctx)
	assert.Equal(t, 2, provider.calls)

	isSlot, err := duties.IsProductionSlot(1, 110)
	require.NoError(t, err)
	assert.True(t, isSlot)
}
