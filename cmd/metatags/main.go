// Command metatags runs the story meta-tag batch: every story text file
// in a directory is sent to the generation model and the parsed eleven
// category records are written as CSV plus a JSON mirror.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kavyahq/storyeval/batch"
	"github.com/kavyahq/storyeval/config"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/metatag"
	"github.com/kavyahq/storyeval/util"
	"github.com/kavyahq/storyeval/version"
)

// stringSlice accepts repeated or comma-separated flag values.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*s = append(*s, p)
		}
	}
	return nil
}

func main() {
	var (
		inputDir    string
		outputCSV   string
		outputJSON  string
		manifest    string
		configFile  string
		envFile     string
		cot         bool
		limit       int
		titles      stringSlice
		showVersion bool
	)
	flag.StringVar(&inputDir, "input", "", "Directory of story .txt files")
	flag.StringVar(&inputDir, "i", "", "Directory of story .txt files (shorthand)")
	flag.StringVar(&outputCSV, "output", "story_meta_tags_comprehensive.csv", "Output CSV path")
	flag.StringVar(&outputCSV, "o", "story_meta_tags_comprehensive.csv", "Output CSV path (shorthand)")
	flag.StringVar(&outputJSON, "json", "", "Output JSON path (default: CSV path with .json extension)")
	flag.StringVar(&manifest, "manifest", "", "Discovered-files CSV path (default: story_files.csv next to the output CSV)")
	flag.StringVar(&configFile, "config", "", "Config file path (default: search for config.yml)")
	flag.StringVar(&envFile, "env", "", ".env file path (default: search for .env)")
	flag.BoolVar(&cot, "cot", false, "Use chain-of-thought generation")
	flag.IntVar(&limit, "limit", 0, "Max stories to process (default: config or 50)")
	flag.Var(&titles, "title", "Whitelist a story title (repeatable or comma-separated)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("metatags", version.Short())
		return
	}

	if inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: metatags -input <dir> [-output <csv>] [-cot] [-title <name>]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if outputJSON == "" {
		outputJSON = strings.TrimSuffix(outputCSV, ".csv") + ".json"
	}

	var cfg config.StoryConfig
	if err := config.Load(&cfg, config.WithConfigFile(configFile), config.WithEnvFile(envFile)); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyDefaults()
	if cot {
		cfg.ChainOfThought = true
	}
	if limit > 0 {
		cfg.Limit = limit
	}
	if len(titles) > 0 {
		cfg.Titles = titles
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging).WithComponent("metatags")
	log.Info("configuration loaded", map[string]interface{}{
		"gemini_key":       util.MaskSecret(cfg.GeminiAPIKey, 4),
		"chain_of_thought": cfg.ChainOfThought,
		"version":          version.Short(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gen, err := genai.New(genai.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create generation client")
	}

	generator, err := metatag.NewGenerator(gen, cfg.ChainOfThought, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create meta-tag generator")
	}

	pipeline := &batch.StoryPipeline{
		Generator:    generator,
		Titles:       cfg.Titles,
		Limit:        cfg.Limit,
		ManifestPath: manifest,
		Log:          log,
	}

	start := time.Now()
	if err := pipeline.Run(ctx, inputDir, outputCSV, outputJSON); err != nil {
		log.WithError(err).Fatal("story batch failed")
	}
	log.Info("done", map[string]interface{}{
		"output_csv":  outputCSV,
		"output_json": outputJSON,
		"elapsed":     time.Since(start).String(),
	})
}
