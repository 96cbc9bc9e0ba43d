package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docagent/internal/agent"
	"docagent/internal/config"
	"docagent/internal/corpus"
	"docagent/internal/llm"
	"docagent/internal/retrieval"
	"docagent/internal/router"
	"docagent/internal/summary"
	"docagent/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, docsDir, logPath string
	var debug bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docagent/config.yaml if not provided)")
	flag.StringVar(&docsDir, "docs", "", "Document directory (overrides config)")
	flag.StringVar(&logPath, "log", "docagent.log", "Log file path")
	flag.BoolVar(&debug, "debug", false, "Debug-level logging")
	flag.Parse()

	var cfg *config.AppConfig
	var cfgSource string
	var err error
	if cfgPath == "" {
		cfg, cfgSource, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
		cfgSource = cfgPath
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if docsDir != "" {
		cfg.Docs.Dir = docsDir
	}

	apiKey, err := cfg.APIKey()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := newLogger(logPath, debug)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting", zap.String("config", cfgSource), zap.String("docs", cfg.Docs.Dir))

	fragments, err := corpus.Load(cfg.Docs.Dir, cfg.Docs.Extensions)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	logger.Info("corpus loaded", zap.Int("fragments", len(fragments)))

	client := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})

	prompts := agent.DefaultPrompts()
	rt := router.New(client, prompts.Router)
	engine := retrieval.NewEngine(fragments, cfg.Search.TopK)
	ag := agent.New(rt, engine, client, prompts, logger)

	header := fmt.Sprintf("Loaded %d fragments from %s.", len(fragments), cfg.Docs.Dir)
	if overview := summary.Overview(fragments, 2); overview != "" {
		header += " " + overview
	}

	if _, err := tea.NewProgram(tui.New(ag, header)).Run(); err != nil {
		log.Fatal(err)
	}
}

// newLogger writes structured logs to a file so the TUI keeps the terminal.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
