package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GO-story/internal/canon"
	"GO-story/internal/config"
	"GO-story/internal/narrator"
	"GO-story/internal/server"
	"GO-story/internal/store"
	"GO-story/internal/story"
)

func main() {
	// Load settings from the environment and our .env file.
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(conf)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", conf.Store, err)
	}
	defer closeStore()
	log.Printf("Using the %s store.", conf.Store)

	opts := []story.Option{}
	if conf.GeminiAPIKey != "" {
		n, err := narrator.NewGemini(ctx, conf.GeminiAPIKey, conf.GeminiModel, systemPrompt)
		if err != nil {
			log.Fatalf("Failed to create Generative client: %v", err)
		}
		defer n.Close()
		opts = append(opts, story.WithNarrator(n))
	} else {
		log.Println("GEMINI_API_KEY is not set. /story/:id/continue is disabled.")
	}

	svc := story.NewService(st, canon.Table{}, opts...)

	// Make sure every canonical character has a row.
	added, err := svc.SeedCharacters(ctx)
	if err != nil {
		log.Fatalf("Failed to seed characters: %v", err)
	}
	if len(added) > 0 {
		log.Printf("Seeded characters: %v", added)
	}

	e := server.New(svc, conf.LogLevel)

	go func() {
		<-ctx.Done()
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown: %s", err)
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", conf.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server stopped: %v", err)
	}
}

func openStore(conf config.Config) (story.Store, func(), error) {
	switch conf.Store {
	case config.StoreSQLite:
		s, err := store.OpenSQLite(conf.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("error on closing sqlite: %v", err)
			}
		}, nil
	case config.StoreSupabase:
		s, err := store.DialSupabase(conf.SupabaseURL, conf.SupabaseKey)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}
