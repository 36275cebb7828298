// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/docqa"
	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/ai/docintel"
	"github.com/poiesic/docqa/vectorstore/qdrant"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; flags fall back to the process environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "docqa",
		Usage:  "Document question answering service",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen-addr",
						Usage:   "Address to listen on",
						Value:   ":8080",
						EnvVars: []string{"LISTEN_ADDR"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the conversation database directory (empty for in-memory)",
						EnvVars: []string{"DB_PATH"},
					},
					&cli.StringFlag{
						Name:     "extraction-endpoint",
						Usage:    "Document extraction service endpoint",
						Required: true,
						EnvVars:  []string{"EXTRACTION_ENDPOINT"},
					},
					&cli.StringFlag{
						Name:     "extraction-key",
						Usage:    "Document extraction service API key",
						Required: true,
						EnvVars:  []string{"EXTRACTION_KEY"},
					},
					&cli.StringFlag{
						Name:    "extraction-model",
						Usage:   "Document extraction model",
						Value:   "prebuilt-layout",
						EnvVars: []string{"EXTRACTION_MODEL"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
						EnvVars:  []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "embedding-key",
						Usage:   "Embedding service API key",
						EnvVars: []string{"EMBEDDING_KEY"},
					},
					&cli.StringFlag{
						Name:    "chat-host",
						Usage:   "Chat completion service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"CHAT_HOST"},
					},
					&cli.StringFlag{
						Name:     "chat-model",
						Usage:    "Chat completion model name",
						Required: true,
						EnvVars:  []string{"CHAT_MODEL"},
					},
					&cli.StringFlag{
						Name:    "chat-key",
						Usage:   "Chat completion service API key",
						EnvVars: []string{"CHAT_KEY"},
					},
					&cli.StringFlag{
						Name:    "index-url",
						Usage:   "Vector index base URL (empty for in-process index)",
						EnvVars: []string{"INDEX_URL"},
					},
					&cli.StringFlag{
						Name:    "index-key",
						Usage:   "Vector index API key",
						EnvVars: []string{"INDEX_KEY"},
					},
					&cli.StringFlag{
						Name:    "index-collection",
						Usage:   "Vector index collection name",
						Value:   "documents",
						EnvVars: []string{"INDEX_COLLECTION"},
					},
					&cli.IntFlag{
						Name:    "index-dimension",
						Usage:   "Embedding vector dimension",
						Value:   1536,
						EnvVars: []string{"INDEX_DIMENSION"},
					},
					&cli.IntFlag{
						Name:    "retrieval-limit",
						Usage:   "Number of chunks retrieved per question",
						Value:   5,
						EnvVars: []string{"RETRIEVAL_LIMIT"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingAPIKey(c.String("embedding-key")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithChatAPIKey(c.String("chat-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []docqa.AppOption{
		docqa.WithAIConfig(aiConfig),
		docqa.WithExtractionConfig(&docintel.Config{
			Endpoint: c.String("extraction-endpoint"),
			APIKey:   c.String("extraction-key"),
			Model:    c.String("extraction-model"),
		}),
		docqa.WithRetrievalLimit(c.Int("retrieval-limit")),
	}
	if indexURL := c.String("index-url"); indexURL != "" {
		opts = append(opts, docqa.WithIndexConfig(&qdrant.Config{
			URL:        indexURL,
			APIKey:     c.String("index-key"),
			Collection: c.String("index-collection"),
			Dimension:  c.Int("index-dimension"),
		}))
	}

	app, err := docqa.NewApp(ctx, c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	srv, err := app.NewServer()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              c.String("listen-addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
