// Command wbrank finds where a product ranks in marketplace search.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/wbrank/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wbrank/internal/adapters/driven/keywords"
	"github.com/custodia-labs/wbrank/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/wbrank/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wbrank/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wbrank/internal/adapters/driven/wildberries"
	"github.com/custodia-labs/wbrank/internal/adapters/driving/cli"
	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/services"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer logger.Sync()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	shards, closeShards, err := openShardCache(settings.Catalog)
	if err != nil {
		return err
	}
	defer closeShards()

	catalog := wildberries.NewCatalogClient(wildberries.CatalogConfig{
		PriceBaseURL: settings.Catalog.PriceBaseURL,
		MaxBasket:    settings.Catalog.MaxBasket,
		Cache:        shards,
		Timeout:      settings.Search.Timeout,
	})
	index := wildberries.NewSearchClientFromSettings(settings.Search)

	var llm driven.LLMService
	if svc := ollama.NewFromSettings(settings.LLM); svc != nil {
		llm = svc
		defer svc.Close()
	}
	extractor := keywords.NewExtractor(settings.Keywords, llm)

	sessionService := services.NewSessionService(memory.NewSessionRegistry())
	productService := services.NewProductService(catalog, extractor)
	rankService := services.NewRankService(index, settings.Search)
	jobService := services.NewRankJobService(productService, rankService, sessionService)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Product:       productService,
		Jobs:          jobService,
		Sessions:      sessionService,
		Settings:      settingsService,
		ConfigWatcher: configStore,
	})

	return cli.Execute()
}

// openShardCache returns the persistent cache, or an in-memory one when
// caching is disabled or the database cannot be opened.
func openShardCache(settings domain.CatalogSettings) (driven.ShardCache, func(), error) {
	if !settings.CacheShards {
		return memory.NewShardCache(), func() {}, nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Shard cache unavailable, using memory: %v", err)
		return memory.NewShardCache(), func() {}, nil
	}
	return store.ShardCache(), func() { _ = store.Close() }, nil
}
