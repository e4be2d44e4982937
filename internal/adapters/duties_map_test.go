package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

func TestEpochDutiesMapUnknownEpoch(t *testing.T) {
	m := NewEpochDutiesMap()

	_, err := m.IsProductionSlot(3, 100)
	require.ErrorIs(t, err, domain.ErrUnknownEpoch)
}

func TestEpochDutiesMapProductionSlot(t *testing.T) {
	m := NewEpochDutiesMap()
	m.SetProductionSlot(1, 100)

	isSlot, err := m.IsProductionSlot(1, 100)
	require.NoError(t, err)
	assert.True(t, isSlot)

	isSlot, err = m.IsProductionSlot(1, 101)
	require.NoError(t, err)
	assert.False(t, isSlot)
}

func TestEpochDutiesMapNoProposal(t *testing.T) {
	m := NewEpochDutiesMap()
	m.MarkNoProposal(2)

	isSlot, err := m.IsProductionSlot(2, 130)
	require.NoError(t, err)
	assert.False(t, isSlot)
}

func TestEpochDutiesMapPoisoning(t *testing.T) {
	m := NewEpochDutiesMap()
	m.SetProductionSlot(1, 100)

	func() {
		defer func() {
			require.NotNil(t, recover(), "writer panic must propagate")
		}()
		m.Update(func(map[domain.Epoch]EpochDuty) {
			panic("writer crashed")
		})
	}()

	// Even previously resolved epochs are unreadable afterwards.
	_, err := m.IsProductionSlot(1, 100)
	require.ErrorIs(t, err, domain.ErrDutiesPoisoned)
}
