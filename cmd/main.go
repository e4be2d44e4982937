package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Feng94/lighthouse/internal/adapters"
	"github.com/Feng94/lighthouse/internal/application/services"
	"github.com/Feng94/lighthouse/internal/config"
	"github.com/Feng94/lighthouse/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info("Starting validator client")
	logger.Info("Beacon node URL: %s", cfg.BeaconNodeURL)
	logger.Info("Poll interval: %s", cfg.PollInterval)
	logger.Info("Genesis time: %d, slot duration: %ds, epoch length: %d",
		cfg.Spec.GenesisTime, cfg.Spec.SlotDuration, cfg.Spec.EpochLength)
	logger.Info("Running %d validators", len(cfg.ValidatorPubkeys))

	beacon, err := adapters.NewBeaconHTTPAdapter(cfg.BeaconNodeURL)
	if err != nil {
		logger.Error("Failed to create beacon HTTP adapter: %v", err)
		os.Exit(1)
	}

	// Shared collaborators: one clock and one protection history for the
	// whole process, read-only from each producer's point of view.
	sharedClock := adapters.NewSharedSlotClock(
		adapters.NewSystemClock(cfg.Spec.GenesisTime, cfg.Spec.SlotDuration),
	)
	protector := adapters.NewProposalHistory()

	// Stand-in signer until a real remote signer is wired up: the secret is
	// derived from the pubkey, which is obviously only fit for test networks.
	signer := adapters.NewLocalSigner()
	for _, pubkey := range cfg.ValidatorPubkeys {
		signer.AddKey(pubkey, pubkey[:])
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One duties manager and one producer loop per validator key, running
	// independently with no cross-key coordination.
	var wg sync.WaitGroup
	for _, pubkey := range cfg.ValidatorPubkeys {
		index, err := beacon.ValidatorIndex(ctx, pubkey)
		if err != nil {
			logger.Error("Failed to resolve validator index: %v", err)
			os.Exit(1)
		}
		logger.Info("Validator %d ready", index)

		dutiesMap := adapters.NewEpochDutiesMap()

		manager := &services.DutiesManager{
			Index:        index,
			Spec:         cfg.Spec,
			SlotClock:    sharedClock,
			Duties:       dutiesMap,
			Provider:     beacon,
			PollInterval: cfg.PollInterval,
		}

		producer := services.NewBlockProducer(
			cfg.Spec,
			pubkey,
			sharedClock,
			dutiesMap,
			beacon,
			signer.ForPubkey(pubkey),
			protector,
		)
		producerService := &services.ProducerService{
			Producer:     producer,
			PollInterval: cfg.PollInterval,
		}

		wg.Add(2)
		go func() {
			defer wg.Done()
			manager.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			producerService.Run(ctx)
		}()
	}

	// Handle SIGINT / SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Warn("Received signal %s, shutting down...", sig)
	cancel()
	wg.Wait()
}
