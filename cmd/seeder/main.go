// Command seeder loads vehicle listings into the configured store, either
// from a JSON file or from a built-in sample set, optionally embedding each
// listing's text for hybrid search.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/carprompt/carsearch/internal/config"
	"github.com/carprompt/carsearch/internal/db"
	dbMemory "github.com/carprompt/carsearch/internal/db/memory"
	dbRedis "github.com/carprompt/carsearch/internal/db/redis"
	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
	logpkg "github.com/carprompt/carsearch/internal/logger"
	listingrepo "github.com/carprompt/carsearch/internal/repository/listing"
	mockai "github.com/carprompt/carsearch/internal/transport/mock"
	openaiTransport "github.com/carprompt/carsearch/internal/transport/openai"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "seeder",
		Usage: "Load vehicle listings into the carsearch store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Configuration environment (local, dev, prod)",
				Value:   config.GetEnv(),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "JSON file with an array of listings; omit to use the built-in samples",
			},
			&cli.BoolFlag{
				Name:  "embed",
				Usage: "Embed each listing's title and description via the configured AI provider",
			},
		},
		Action: seed,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func seed(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(c.String("env"), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	listings, err := loadListings(c.String("file"))
	if err != nil {
		return err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	var embedder domain.Embedder
	if c.Bool("embed") {
		embedder = buildEmbedder(cfg, logger)
	}

	repo := listingrepo.New(store, cfg.Storage.KeyPrefix)
	for i := range listings {
		l := &listings[i]
		if embedder != nil {
			res, err := embedder.Embed(ctx, l.Title+" "+l.Description)
			if err != nil {
				return fmt.Errorf("embed listing %s: %w", l.ID, err)
			}
			l.Embedding = res.Embedding
		}
		if err := repo.Put(ctx, l); err != nil {
			return fmt.Errorf("store listing %s: %w", l.ID, err)
		}
		logger.Info("Seeded listing", zap.String("id", l.ID), zap.String("title", l.Title))
	}

	logger.Info("Seeding complete", zap.Int("count", len(listings)))
	return nil
}

func buildStore(cfg config.Config) (db.Store, error) {
	switch cfg.Database.Driver {
	case "redis":
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "memory":
		return dbMemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	if cfg.AI.Provider == "openai" {
		return openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.AI.APIKey,
			BaseURL:    cfg.AI.BaseURL,
			EmbedModel: cfg.AI.EmbedModel,
			Dimensions: cfg.AI.Dimensions,
			Logger:     logger,
		})
	}
	return mockai.NewEmbedder(cfg.AI.Dimensions)
}

func loadListings(path string) ([]domain.Listing, error) {
	if path == "" {
		return sampleListings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parse listings file: %w", err)
	}
	return listings, nil
}

// sampleListings is a small UK-market data set for local development.
func sampleListings() []domain.Listing {
	return []domain.Listing{
		{
			ID: "sample-1", Title: "Toyota Corolla 1.8 Hybrid Icon",
			Description: "Reliable family hatchback with full service history and excellent fuel economy",
			Make:        "Toyota", Model: "Corolla", Year: 2020, Price: 16500,
			Mileage: filter.FloatPtr(28000), FuelType: "hybrid", Transmission: "automatic",
			BodyType: "hatchback", Location: "Manchester",
		},
		{
			ID: "sample-2", Title: "Ford Focus 1.0 EcoBoost ST-Line",
			Description: "Sporty drive, one owner, low running costs",
			Make:        "Ford", Model: "Focus", Year: 2018, Price: 11000,
			Mileage: filter.FloatPtr(42000), FuelType: "petrol", Transmission: "manual",
			BodyType: "hatchback", Location: "Leeds",
		},
		{
			ID: "sample-3", Title: "Volkswagen Golf 2.0 TDI SE",
			Description: "Economical diesel, comfortable motorway cruiser, good condition",
			Make:        "Volkswagen", Model: "Golf", Year: 2017, Price: 9500,
			Mileage: filter.FloatPtr(68000), FuelType: "diesel", Transmission: "manual",
			BodyType: "hatchback", Location: "Birmingham",
		},
		{
			ID: "sample-4", Title: "BMW 320d M Sport Touring",
			Description: "Premium estate with leather interior and sat nav",
			Make:        "BMW", Model: "320d", Year: 2019, Price: 18900,
			Mileage: filter.FloatPtr(51000), FuelType: "diesel", Transmission: "automatic",
			BodyType: "estate", Location: "London",
		},
		{
			ID: "sample-5", Title: "Kia Sportage 1.6 GDi 2",
			Description: "Practical family SUV, spacious boot, remaining manufacturer warranty",
			Make:        "Kia", Model: "Sportage", Year: 2021, Price: 19500,
			Mileage: filter.FloatPtr(19000), FuelType: "petrol", Transmission: "manual",
			BodyType: "suv", Location: "Bristol",
		},
		{
			ID: "sample-6", Title: "Nissan Micra 1.0 Acenta",
			Description: "Cheap first car, low insurance group, recently serviced",
			Make:        "Nissan", Model: "Micra", Year: 2016, Price: 5400,
			Mileage: filter.FloatPtr(55000), FuelType: "petrol", Transmission: "manual",
			BodyType: "hatchback", Location: "Sheffield",
		},
		{
			ID: "sample-7", Title: "Tesla Model 3 Standard Range Plus",
			Description: "Electric saloon with autopilot, one owner from new",
			Make:        "Tesla", Model: "Model 3", Year: 2021, Price: 27000,
			Mileage: filter.FloatPtr(24000), FuelType: "electric", Transmission: "automatic",
			BodyType: "saloon", Location: "London",
		},
		{
			ID: "sample-8", Title: "Mazda MX-5 2.0 Sport Nav",
			Description: "Fun weekend convertible, garaged, immaculate condition",
			Make:        "Mazda", Model: "MX-5", Year: 2018, Price: 14250,
			Mileage: nil, FuelType: "petrol", Transmission: "manual",
			BodyType: "convertible", Location: "Cambridge",
		},
	}
}
