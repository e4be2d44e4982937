package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// Config holds runtime configuration for the validator client.
type Config struct {
	BeaconNodeURL    string
	PollInterval     time.Duration
	ValidatorPubkeys []domain.Pubkey
	Spec             *domain.ChainSpec
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	beaconURL := strings.TrimSpace(os.Getenv("BEACON_NODE_URL"))
	if beaconURL == "" {
		return nil, fmt.Errorf("BEACON_NODE_URL is required")
	}

	chainSpec := domain.FoundationSpec()
	if path := strings.TrimSpace(os.Getenv("CHAIN_SPEC_FILE")); path != "" {
		loaded, err := loadChainSpec(path)
		if err != nil {
			return nil, fmt.Errorf("loading CHAIN_SPEC_FILE: %w", err)
		}
		chainSpec = loaded
	}

	// Default cadence: ten polls per slot.
	pollInterval := time.Duration(chainSpec.SlotDuration) * time.Second / 10
	if intervalStr := strings.TrimSpace(os.Getenv("POLL_INTERVAL_MS")); intervalStr != "" {
		ms, err := strconv.Atoi(intervalStr)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL_MS: %q", intervalStr)
		}
		pollInterval = time.Duration(ms) * time.Millisecond
	}

	keyStr := strings.TrimSpace(os.Getenv("VALIDATOR_PUBKEYS"))
	if keyStr == "" {
		return nil, fmt.Errorf("VALIDATOR_PUBKEYS is required (comma-separated hex pubkeys)")
	}

	rawParts := strings.Split(keyStr, ",")
	pubkeys := make([]domain.Pubkey, 0, len(rawParts))
	for _, p := range rawParts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pubkey, err := parsePubkey(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pubkey %q in VALIDATOR_PUBKEYS: %w", p, err)
		}
		pubkeys = append(pubkeys, pubkey)
	}
	if len(pubkeys) == 0 {
		return nil, fmt.Errorf("no valid pubkeys parsed from VALIDATOR_PUBKEYS")
	}

	return &Config{
		BeaconNodeURL:    beaconURL,
		PollInterval:     pollInterval,
		ValidatorPubkeys: pubkeys,
		Spec:             chainSpec,
	}, nil
}

// loadChainSpec reads chain parameters from a YAML file. Missing fields fall
// back to the foundation defaults.
func loadChainSpec(path string) (*domain.ChainSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	chainSpec := domain.FoundationSpec()
	if err := yaml.Unmarshal(data, chainSpec); err != nil {
		return nil, err
	}
	return chainSpec, nil
}

func parsePubkey(s string) (domain.Pubkey, error) {
	var pubkey domain.Pubkey
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pubkey, err
	}
	if len(raw) != len(pubkey) {
		return pubkey, fmt.Errorf("pubkey must be %d bytes, got %d", len(pubkey), len(raw))
	}
	copy(pubkey[:], raw)
	return pubkey, nil
}
