package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fr0stylo/chaindex/internal/adapters/redis"
	"github.com/fr0stylo/chaindex/internal/adapters/sqlite"
	"github.com/fr0stylo/chaindex/internal/app/ports"
	"github.com/fr0stylo/chaindex/internal/app/services"
	"github.com/fr0stylo/chaindex/internal/chain"
	"github.com/fr0stylo/chaindex/internal/config"
	"github.com/fr0stylo/chaindex/internal/event"
	"github.com/fr0stylo/chaindex/internal/ingestor"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	root := &cobra.Command{
		Use:           "subscriber",
		Short:         "Index contract events into the shared event store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		subscribeCommand(event.CollectionCreated, "collection-created", "Listen for 'CollectionCreated' events."),
		subscribeCommand(event.TokenMinted, "token-minted", "Listen for 'TokenMinted' events."),
	)

	if err := root.Execute(); err != nil {
		slog.Error("Subscriber terminated", "error", err)
		os.Exit(1)
	}
}

func subscribeCommand(category event.Category, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <contract-address>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid contract address %q", args[0])
			}
			return run(cmd.Context(), category, common.HexToAddress(args[0]))
		},
	}
}

// run blocks until the subscription breaks or the process is signalled. Any
// transport or storage failure surfaces here unretried; the supervisor is
// responsible for restarts.
func run(ctx context.Context, category event.Category, contract common.Address) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	storage, closeStorage, err := openStorage(ctx, cfg, cfg.Storage.SubscriberPoolSize)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	client, err := chain.Dial(ctx, cfg.Chain.WebsocketURL)
	if err != nil {
		return err
	}
	defer client.Close()

	subscription, err := chain.Subscribe(ctx, client, contract, category)
	if err != nil {
		return err
	}
	defer subscription.Unsubscribe()

	slog.Info("Subscribed", "category", category.String(), "contract", contract.Hex())

	indexer := services.NewIndexer(storage, slog.Default())
	return ingestor.New(indexer, category, slog.Default()).Run(ctx, subscription.Logs, subscription.Errs())
}

func openStorage(ctx context.Context, cfg config.Config, poolSize int) (ports.Storage, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := redis.Open(ctx, cfg.Storage.RedisURL, poolSize)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}
