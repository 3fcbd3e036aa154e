// cmd/dradio/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dradio/internal/config"
	"dradio/internal/discord"
	"dradio/internal/storage"
	v "dradio/internal/version"
	"dradio/internal/web"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	history, err := storage.NewHistory(cfg.HistoryPath)
	if err != nil {
		log.Fatal(err)
	}
	defer history.Close()

	channels := storage.NewChannelStore(cfg.ChannelsPath)

	go web.RunServer(ctx, cfg.WebPort)

	bot := discord.NewBot(cfg, channels, history)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
