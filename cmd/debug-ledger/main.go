// debug-ledger dumps every entitlement record from the configured store,
// so the operator can audit balances without touching redis or the ledger
// file by hand.
package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/ovozlabs/ovoz-voice-service/cache"
	"github.com/ovozlabs/ovoz-voice-service/config"
	"github.com/ovozlabs/ovoz-voice-service/entitlement"
)

func main() {
	cfg, err := config.LoadAllConfigs()
	if err != nil {
		log.Fatalf("Fatal error loading config: %v", err)
	}

	ctx := context.Background()

	switch cfg.Service.StoreBackend {
	case "redis":
		dumpRedis(ctx, cfg)
	case "file":
		dumpFile(ctx, cfg)
	default:
		log.Fatalf("debug-ledger supports redis and file backends, got %q", cfg.Service.StoreBackend)
	}
}

func dumpRedis(ctx context.Context, cfg *config.AllConfig) {
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	store := entitlement.NewRedisStoreFromClient(client.Client)

	const pattern = "ovoz-voice-service:user:entitlement:*"
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	var userIDs []string
	for iter.Next(ctx) {
		key := iter.Val()
		userIDs = append(userIDs, key[strings.LastIndex(key, ":")+1:])
	}
	if err := iter.Err(); err != nil {
		log.Fatalf("Failed to scan ledger keys: %v", err)
	}

	sort.Strings(userIDs)
	for _, userID := range userIDs {
		rec, err := store.Get(ctx, userID)
		if err != nil {
			log.Printf("Failed to load record for user %s: %v", userID, err)
			continue
		}
		printRecord(userID, rec)
	}
	fmt.Printf("\n%d users in the ledger\n", len(userIDs))
}

func dumpFile(ctx context.Context, cfg *config.AllConfig) {
	path, err := config.ExpandPath(cfg.Service.LedgerPath)
	if err != nil {
		log.Fatalf("Bad ledger path: %v", err)
	}
	store, err := entitlement.NewFileStore(path)
	if err != nil {
		log.Fatalf("Failed to open ledger file: %v", err)
	}

	ledger, err := store.All(ctx)
	if err != nil {
		log.Fatalf("Failed to read ledger: %v", err)
	}

	userIDs := make([]string, 0, len(ledger))
	for userID := range ledger {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	for _, userID := range userIDs {
		rec := ledger[userID]
		printRecord(userID, &rec)
	}
	fmt.Printf("\n%d users in the ledger\n", len(userIDs))
}

func printRecord(userID string, rec *entitlement.Record) {
	fmt.Printf("user %-15s consumed %3d / %3d (remaining %d)\n", userID, rec.Consumed, rec.Limit, rec.Remaining())
}
