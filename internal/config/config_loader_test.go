package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPubkeyHex() string {
	return "0x" + hex.EncodeToString(make([]byte, 48))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("VALIDATOR_PUBKEYS", validPubkeyHex())
	t.Setenv("POLL_INTERVAL_MS", "")
	t.Setenv("CHAIN_SPEC_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5052", cfg.BeaconNodeURL)
	assert.Len(t, cfg.ValidatorPubkeys, 1)
	assert.Equal(t, uint64(64), cfg.Spec.EpochLength)
	// Ten polls per slot by default.
	assert.Equal(t, time.Duration(cfg.Spec.SlotDuration)*time.Second/10, cfg.PollInterval)
}

func TestLoadRequiresBeaconURL(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "")
	t.Setenv("VALIDATOR_PUBKEYS", validPubkeyHex())

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPubkey(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("VALIDATOR_PUBKEYS", "0x1234")
	t.Setenv("CHAIN_SPEC_FILE", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadChainSpecFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	data := []byte("epoch_length: 8\nslot_duration: 12\ngenesis_time: 1606824023\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("VALIDATOR_PUBKEYS", validPubkeyHex())
	t.Setenv("CHAIN_SPEC_FILE", path)
	t.Setenv("POLL_INTERVAL_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(8), cfg.Spec.EpochLength)
	assert.Equal(t, uint64(12), cfg.Spec.SlotDuration)
	assert.Equal(t, uint64(1606824023), cfg.Spec.GenesisTime)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
}
