// Package main is the Kotae CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generate"
	"github.com/hyperjump/kotae/internal/ingest"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retriever"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/token"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/kotae/config.yaml"
	defaultServerURL  = "http://localhost:8000"
)

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "kotae server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "ask":
		runAsk()
	case "search":
		runSearch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (retrieval scores, generation timing, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	if names := components.Generators.Names(); len(names) > 0 {
		logger.Info("generation providers ready",
			zap.Strings("providers", names),
			zap.String("default", components.Generators.Default()))
	} else {
		logger.Warn("no generation provider configured; answer requests that pass the evidence guard will fail",
			zap.String("hint", "set AZURE_OPENAI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY"))
	}

	srv := server.NewServer(components.Orchestrator, components.Retriever, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataDir := fs.String("data", "", "corpus directory (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	embedder, err := newEmbedder(&cfg.Embedding)
	if err != nil {
		logger.Fatal("Failed to initialize embedder", zap.Error(err))
	}
	defer embedder.Close()

	codec, err := newCodec(cfg.Ingest.Tokenizer)
	if err != nil {
		logger.Fatal("Failed to load tokenizer", zap.Error(err))
	}

	opts := []ingest.BuilderOption{
		ingest.WithChunking(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		ingest.WithBatchSize(cfg.Ingest.BatchSize),
		ingest.WithExtensions(cfg.Ingest.Extensions),
		ingest.WithExcludePrefixes(cfg.Ingest.ExcludePrefixes),
	}
	if debugMode {
		opts = append(opts, ingest.WithLogger(logger))
	}
	builder := ingest.NewBuilder(embedder, codec, opts...)

	dir := cfg.Ingest.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	stats, err := builder.Build(context.Background(), dir, cfg.Store.Dir)
	if err != nil {
		fmt.Printf("Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d document(s) into %d chunk(s) from %s\n", stats.Documents, stats.Chunks, dir)
	fmt.Printf("Store written to %s (model %s, %d dimensions)\n", cfg.Store.Dir, stats.Model, stats.Dimensions)
}

// printAskUsage prints ask subcommand usage and grounding hints.
func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kotae ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "The question is all remaining arguments joined by spaces. Multi-word questions work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Answers cite sources as [1], [2] matching the printed source list.
When the best retrieval score is below %v the pipeline refuses to
answer instead of letting the model guess.

Examples:
  kotae ask when are assignments due
  kotae ask "when are assignments due"            # same as above
  kotae ask --provider gemini --k 6 what is the late policy
  kotae ask --output json what is the grading rubric
`, answer.ConfidenceThreshold)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kotae search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Search runs retrieval only; no answer is generated. Chunk text is
omitted unless --text is set.

Examples:
  kotae search late submission policy
  kotae search --text "late submission policy"
  kotae search --output json grading rubric   # structured JSON for other apps
  kotae search --k 10 office hours
`)
}

// buildQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting (e.g. "late policy" vs late policy).
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// reorderArgs moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "kotae ask \"question\" -k 6"
// would otherwise leave -k unparsed.
func reorderArgs(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runAsk() {
	askArgs := reorderArgs(os.Args[2:])
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = answer in-process without a server)")
	k := fs.Int("k", 0, "number of context chunks to retrieve (default 4, max 20)")
	provider := fs.String("provider", "", "generation provider: azure, openai, anthropic, or gemini (default from config)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgs)

	if fs.NArg() < 1 {
		printAskUsage(fs)
		os.Exit(1)
	}
	question := buildQuery(fs.Args())
	if question == "" {
		printAskUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	request := &models.AnswerRequest{Query: question, K: *k, Provider: *provider}

	if *serverURL != "" {
		// Use the HTTP API when the server is running (shares its loaded store).
		response, err := askViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteAnswer(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// In-process pipeline (when the server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Orchestrator.Answer(context.Background(), request)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAnswer(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSearch() {
	searchArgs := reorderArgs(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = search in-process without a server)")
	k := fs.Int("k", 0, "number of results (default 4, max 20)")
	includeText := fs.Bool("text", false, "include chunk text in results")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	query := buildQuery(fs.Args())
	if query == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, &searchRequest{Query: query, K: *k, IncludeText: *includeText})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// In-process retrieval (when the server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Orchestrator.Search(context.Background(), query, *k, *includeText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// searchRequest mirrors the POST /rag/search body.
type searchRequest struct {
	Query       string `json:"query"`
	K           int    `json:"k,omitempty"`
	IncludeText bool   `json:"include_text,omitempty"`
}

func askViaHTTP(serverURL string, request *models.AnswerRequest) (*models.AnswerResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/rag/answer", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func searchViaHTTP(serverURL string, request *searchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/rag/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = read the store directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status models.StatusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		// Reading the store directly needs no embedder or credentials.
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		st, err := store.Load(cfg.Store.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load store (run \"kotae ingest\" first): %v\n", err)
			os.Exit(1)
		}
		status = models.StatusResponse{
			Model:     st.Meta.Model,
			Chunks:    len(st.Chunks),
			Documents: st.Documents(),
			Dimension: st.Dimensions(),
			StoreDir:  st.Dir,
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("model:       %s   # embedding model the store was built with\n", status.Model)
		fmt.Printf("documents:   %d   # count of ingested documents\n", status.Documents)
		fmt.Printf("chunks:      %d   # count of embedded chunks\n", status.Chunks)
		fmt.Printf("dimension:   %d   # embedding vector width\n", status.Dimension)
		fmt.Printf("store_dir:   %s\n", status.StoreDir)
		if len(status.Providers) > 0 {
			fmt.Printf("providers:   %s\n", strings.Join(status.Providers, ", "))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*models.StatusResponse, error) {
	resp, err := http.Get(serverURL + "/rag/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Embedder     embedding.Embedder
	Retriever    *retriever.Retriever
	Generators   *generate.Registry
	Orchestrator *answer.Orchestrator
}

func (c *Components) Close() {
	// Retriever.Close releases the embedder; close it directly only when
	// the retriever never opened.
	if c.Retriever != nil {
		_ = c.Retriever.Close()
	} else if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Generators != nil {
		_ = c.Generators.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	embedder, err := newEmbedder(&cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	retrOpts := []retriever.Option{}
	if debug && logger != nil {
		retrOpts = append(retrOpts, retriever.WithLogger(logger))
	}
	retr, err := retriever.Open(cfg.Store.Dir, embedder, retrOpts...)
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to open store (run \"kotae ingest\" first): %w", err)
	}

	generators := newGenerators(context.Background(), &cfg.Generation, logger)

	orchOpts := []answer.Option{answer.WithTimeout(cfg.Generation.Timeout())}
	if debug && logger != nil {
		orchOpts = append(orchOpts, answer.WithLogger(logger))
	}
	orchestrator := answer.NewOrchestrator(retr, generators, orchOpts...)

	return &Components{
		Embedder:     embedder,
		Retriever:    retr,
		Generators:   generators,
		Orchestrator: orchestrator,
	}, nil
}

// newCodec builds the chunking codec named by the config. "simple" is
// the offline whitespace codec; any other name is a tiktoken encoding.
func newCodec(name string) (token.Codec, error) {
	if name == "simple" {
		return token.NewSimple(), nil
	}
	return token.NewTiktoken(name)
}

// newEmbedder builds the embedding backend named by the config. The
// onnx backend runs a local model file; openai calls the hosted API
// with OPENAI_API_KEY; mock is deterministic and needs nothing.
func newEmbedder(cfg *config.EmbeddingConfig) (embedding.Embedder, error) {
	switch cfg.Backend {
	case "onnx", "":
		embedder, err := embedding.NewONNXEmbedder(cfg.ModelPath, cfg.Model, cfg.Dimensions, cfg.MaxTokens, cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("onnx embedder: %w", err)
		}
		return embedder, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai embedding backend requires OPENAI_API_KEY")
		}
		opts := []embedding.OpenAIOption{embedding.WithCacheSize(cfg.CacheSize)}
		if cfg.Dimensions > 0 {
			opts = append(opts, embedding.WithDimensions(cfg.Dimensions))
		}
		return embedding.NewOpenAIEmbedder(cfg.APIKey, cfg.BaseURL, cfg.Model, opts...), nil
	case "mock":
		return embedding.NewMockEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q; use onnx, openai, or mock", cfg.Backend)
	}
}

// newGenerators registers one generator per provider that has
// credentials. Providers without keys are skipped rather than failing,
// so a store can still be searched on a machine with no generation
// credentials at all.
func newGenerators(ctx context.Context, cfg *config.GenerationConfig, logger *zap.Logger) *generate.Registry {
	registry := generate.NewRegistry(cfg.DefaultProvider)
	if cfg.Azure.Endpoint != "" && cfg.Azure.APIKey != "" {
		registry.Register(generate.NewAzureGenerator(cfg.Azure.Endpoint, cfg.Azure.APIKey, cfg.Azure.Deployment))
	}
	if cfg.OpenAI.APIKey != "" {
		registry.Register(generate.NewOpenAIGenerator(cfg.OpenAI.APIKey, "", cfg.OpenAI.Model))
	}
	if cfg.Anthropic.APIKey != "" {
		registry.Register(generate.NewAnthropicGenerator(cfg.Anthropic.APIKey, cfg.Anthropic.Model))
	}
	if cfg.Gemini.APIKey != "" {
		gem, err := generate.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil && logger != nil {
			logger.Warn("gemini generator unavailable", zap.Error(err))
		} else if err == nil {
			registry.Register(gem)
		}
	}
	return registry
}

func printUsage() {
	fmt.Println(`kotae - Retrieval-augmented question answering over local documents

Usage:
  kotae server [flags]            Start the HTTP API server
  kotae ingest [flags]            Embed the corpus and write the vector store
  kotae ask [flags] <question>    Ask a question grounded in the ingested corpus
  kotae search [flags] <query>    Retrieve matching chunks without generation
  kotae status [flags]            Show store and model status
  kotae version                   Show version
  kotae help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml)
  --debug            Enable debug logging (retrieval scores, generation timing, etc.)

Ingest Flags:
  --config string    Config file path
  --data string      Corpus directory (default from config)

Ask Flags:
  --config string      Config file path (for in-process mode)
  --server string      Server URL (default: http://localhost:8000). Use empty (--server "") to answer in-process.
  --k int              Number of context chunks to retrieve (default 4, max 20)
  --provider string    Generation provider: azure, openai, anthropic, or gemini (default from config)
  --output string      Output format: text or json (default: text)

Search Flags:
  --config string    Config file path (for in-process mode)
  --server string    Server URL (default: http://localhost:8000). Use empty (--server "") to search in-process.
  --k int            Number of results (default 4, max 20)
  --text             Include chunk text in results
  --output string    Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for direct store mode)
  --server string    Server URL (default: http://localhost:8000). Use empty (--server "") to read the store directly.
  --output string    Output format: text or json (default: text)

Examples:
  kotae ingest
  kotae server
  kotae ask "when are assignments due?"
  kotae ask --provider anthropic --k 6 when are assignments due
  kotae search --text "late submission policy"
  kotae search --output json "grading rubric"   # structured JSON for other apps
  kotae status
  kotae status --output json`)
}
