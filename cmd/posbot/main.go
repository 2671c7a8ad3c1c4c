package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/susu3304/posbot/internal/api"
	"github.com/susu3304/posbot/internal/bot"
	"github.com/susu3304/posbot/internal/catalog"
	"github.com/susu3304/posbot/internal/config"
	"github.com/susu3304/posbot/internal/db"
	"github.com/susu3304/posbot/internal/ledger"
	"github.com/susu3304/posbot/internal/shift"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the catalog once; it is read-only from here on
	cat, currency, err := loadCatalog(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if currency == "" {
		currency = cfg.Currency
	}
	log.Printf("Catalog loaded: %d items, prices in %s", cat.Len(), currency)

	store := ledger.NewStore()
	engine := shift.NewEngine(store, cat, shift.Options{
		Currency: currency,
		ShopName: cfg.ShopName,
	})

	// Start Discord bot
	if cfg.BotEnabled() {
		discordBot, err := bot.New(cfg.DiscordToken, engine)
		if err != nil {
			log.Fatalf("Failed to create discord bot: %v", err)
		}
		if err := discordBot.Start(); err != nil {
			log.Fatalf("Failed to start discord bot: %v", err)
		}
		defer discordBot.Stop()
	}

	// Start API server
	var apiServer *api.API
	if cfg.APIEnabled() {
		apiServer = api.New(cfg, engine)
		go func() {
			if err := apiServer.Start(); err != nil {
				log.Printf("API server error: %v", err)
			}
		}()
	}

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	if apiServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			log.Printf("API shutdown error: %v", err)
		}
	}
}

// loadCatalog picks the catalog source: the database table, then the YAML
// file, then the built-in price list. A file currency overrides CURRENCY.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, string, error) {
	var (
		fileCatalog *catalog.Catalog
		currency    string
	)
	if cfg.CatalogFile != "" {
		c, cur, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, "", err
		}
		fileCatalog, currency = c, cur
	}

	if cfg.DatabaseURL == "" {
		if fileCatalog != nil {
			return fileCatalog, currency, nil
		}
		return catalog.Default(), "", nil
	}

	// Connect to database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, "", err
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(ctx); err != nil {
		return nil, "", err
	}

	seed := fileCatalog
	if seed == nil {
		seed = catalog.Default()
	}
	seeded, err := database.SeedCatalog(ctx, seed)
	if err != nil {
		return nil, "", err
	}
	if seeded {
		log.Printf("Seeded empty catalog table with %d items", seed.Len())
	}

	cat, err := database.Catalog(ctx)
	if err != nil {
		return nil, "", err
	}
	return cat, currency, nil
}
