package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"talentmatch/internal/config"
	"talentmatch/internal/extract"
	"talentmatch/internal/http"
	"talentmatch/internal/ingest"
	"talentmatch/internal/llm"
	"talentmatch/internal/objstore"
	"talentmatch/internal/search"
	"talentmatch/internal/shortlist"
	"talentmatch/internal/storage"
	"talentmatch/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API matches recruiters with candidates by indexing resume text and answering chat-driven shortlist requests grounded in it.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: TalentMatch API
//   description: |
//     Candidate matching API for a hiring platform. Candidates upload PDF
//     resumes, which are extracted, embedded and indexed. Recruiters search
//     the index semantically and run chat conversations whose shortlist
//     replies are grounded in the stored resume text.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("Invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	profileRepo := storage.NewProfileRepo(db)
	chatRepo := storage.NewChatRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantTimeout)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Embedding vector sizes are validated on every response, so a
	// misconfigured model surfaces as an ingest or search error rather
	// than blocking startup.
	embedder := llm.NewEmbeddingsClient(llm.EmbeddingsConfig{
		BaseURL:      cfg.EmbeddingBaseURL,
		APIKey:       cfg.EmbeddingAPIKey,
		Model:        cfg.EmbeddingModel,
		ExpectedSize: cfg.QdrantVectorSize,
		Timeout:      cfg.LLMTimeout,
		MaxRetries:   cfg.LLMMaxRetries,
	})

	// Initialize resume file store
	objects, err := objstore.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}
	slog.Info("Object store initialized", "root", objects.Root())

	// Create resume ingestion pipeline
	ingestPipeline := ingest.NewPipeline(
		profileRepo,
		extract.NewPDFExtractor(),
		embedder,
		vectorStore,
		objects,
		cfg.QdrantCollection,
		cfg.MinResumeText,
	)

	// Create LLM chat provider. A disabled provider is fine here; chat
	// replies degrade instead of the service refusing to start.
	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider:    cfg.LLMProvider,
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
		MaxRetries:  cfg.LLMMaxRetries,
	})
	if err != nil {
		log.Fatalf("Failed to create LLM provider: %v", err)
	}

	// Create candidate search engine and shortlist orchestrator
	engine := search.NewEngine(embedder, vectorStore, profileRepo, cfg.QdrantCollection, cfg.SearchLimit)
	responder := shortlist.NewOrchestrator(chatRepo, engine, provider, cfg.SearchLimit, cfg.ShortlistSize, cfg.PublicBaseURL)
	slog.Info("Shortlist orchestrator initialized", "search_limit", cfg.SearchLimit, "shortlist_size", cfg.ShortlistSize)

	// Create router with dependencies
	deps := &http.Deps{
		DB:             db,
		Profiles:       profileRepo,
		Chats:          chatRepo,
		Pipeline:       ingestPipeline,
		Engine:         engine,
		Responder:      responder,
		Objects:        objects,
		Vectors:        vectorStore,
		Collection:     cfg.QdrantCollection,
		FilesDir:       objects.Root(),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "provider", cfg.LLMProvider, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
