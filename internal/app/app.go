package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	db "github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/database"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/llm"
	objectclient "github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/object-client"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/services"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Parser       *services.ParseService
	Matcher      *services.MatchService
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)

	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	geminiEmbedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	fallback, err := llm.NewGeminiFallbackExtractor(appCtx, cfg.AIAPIKey, cfg.GenModel)

	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the fallback extractor, %w", err)
	}

	pipeline := parse_engine.New(parse_engine.Config{
		MinChars: cfg.MinResumeLen,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	parser := services.NewParseService(dbClient, objClient, pipeline, fallback, cfg)
	parser.Start(ctx, cfg.ParseWorkers)

	matcher := services.NewMatchService(dbClient, geminiEmbedder)

	server := NewServer(context.Background(), cfg, dbClient, objClient, parser, matcher)

	return &App{DBClient: dbClient, ObjectClient: objClient, Parser: parser, Matcher: matcher, Server: server}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
