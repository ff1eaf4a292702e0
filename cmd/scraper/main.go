package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craigslist-hunter/internal/bot"
	"craigslist-hunter/internal/config"
	"craigslist-hunter/internal/kafka"
	"craigslist-hunter/internal/scraper"
)

func main() {
	env := config.LoadEnv()

	configPath := flag.String("config", env.ConfigPath, "path to the search configuration (JSON or YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Loaded %d items for %s", len(cfg.Items), cfg.Location)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := scraper.NewFetcher(scraper.NewCollyTransport(), os.Stdout)
	runner := scraper.NewRunner(fetcher)

	listings, err := runner.Run(ctx, cfg)
	if err != nil {
		log.Fatalf("Search run failed: %v", err)
	}

	if err := scraper.WriteReport(os.Stdout, cfg, listings); err != nil {
		log.Fatalf("Failed to print report: %v", err)
	}
	log.Printf("✅ Run completed: %d listings", len(listings))

	deliver(ctx, env, cfg, listings)
}

// deliver hands the finished report to the sinks enabled in the environment.
func deliver(ctx context.Context, env *config.Env, cfg *config.Config, listings []*scraper.ListedItem) {
	if env.KafkaEnabled() {
		producer := kafka.NewProducer(env.KafkaBrokers, env.KafkaTopic)
		event := kafka.NewListingsFoundEvent(cfg.Location, listings, time.Now())

		if err := producer.PublishListingsFound(ctx, event); err != nil {
			log.Printf("Error publishing listings: %v", err)
		}
		if err := producer.Close(); err != nil {
			log.Printf("Error closing producer: %v", err)
		}
	}

	if env.BotEnabled() {
		telegramBot, err := bot.NewBot(env.BotToken, env.BotChatID)
		if err != nil {
			log.Printf("Error creating bot: %v", err)
			return
		}
		if err := telegramBot.SendReport(cfg.Location, listings); err != nil {
			log.Printf("Error sending report: %v", err)
		}
	}
}
