// Command analyze runs the full journey for one creator website and prints the result as JSON.
//
//	go run ./cmd/tools/analyze -url https://creator.example.com -budget 1000-2500 -focus adventure
package main

import (
	"context"
	"flag"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/service/pipeline"
	"github.com/kapu/tastejourney-go/internal/service/scraper"
)

const runTimeout = 60 * time.Second

func main() {
	target := flag.String("url", "", "creator website URL")
	budget := flag.String("budget", "", "budget range, e.g. 1000-2500")
	duration := flag.String("duration", "", "trip duration")
	style := flag.String("style", "", "travel style")
	focus := flag.String("focus", "", "content focus")
	climate := flag.String("climate", "", "preferred climate")
	companion := flag.String("companion", "", "travel companion")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if *target == "" {
		logger.Fatal("missing -url")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	catalog, err := domain.LoadCatalog()
	if err != nil {
		logger.Fatal("failed to load destination catalog", zap.Error(err))
	}

	svc := pipeline.New(pipeline.Options{
		Fetcher: scraper.NewFromConfig(cfg.Scraper, logger),
		Catalog: catalog,
		TopK:    cfg.Recommend.TopK,
		Logger:  logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	journey, err := svc.Run(ctx, *target, domain.UserPreferences{
		Budget:          *budget,
		ContentFocus:    *focus,
		Duration:        *duration,
		Style:           *style,
		ClimatePref:     *climate,
		TravelCompanion: *companion,
	})
	if err != nil {
		logger.Fatal("journey failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(journey); err != nil {
		logger.Fatal("failed to encode result", zap.Error(err))
	}
}
