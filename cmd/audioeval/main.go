// Command audioeval runs the audio evaluation batch: every audio file in
// a directory is transcribed by Sarvam and by Gemini, non-English Sarvam
// output is translated, and per-file cost/latency lands in a CSV report
// with a totals row.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kavyahq/storyeval/audio"
	"github.com/kavyahq/storyeval/batch"
	"github.com/kavyahq/storyeval/config"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/pricing"
	"github.com/kavyahq/storyeval/stt"
	"github.com/kavyahq/storyeval/stt/gemini"
	"github.com/kavyahq/storyeval/stt/sarvam"
	"github.com/kavyahq/storyeval/translate"
	"github.com/kavyahq/storyeval/util"
	"github.com/kavyahq/storyeval/version"
)

func main() {
	var (
		inputDir    string
		outputCSV   string
		configFile  string
		envFile     string
		agreement   bool
		showVersion bool
	)
	flag.StringVar(&inputDir, "input", "", "Directory of audio files to evaluate")
	flag.StringVar(&inputDir, "i", "", "Directory of audio files to evaluate (shorthand)")
	flag.StringVar(&outputCSV, "output", "output_with_metrics.csv", "Output CSV path")
	flag.StringVar(&outputCSV, "o", "output_with_metrics.csv", "Output CSV path (shorthand)")
	flag.StringVar(&configFile, "config", "", "Config file path (default: search for config.yml)")
	flag.StringVar(&envFile, "env", "", ".env file path (default: search for .env)")
	flag.BoolVar(&agreement, "agreement", false, "Add cross-provider wer/cer columns to the report")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("audioeval", version.Short())
		return
	}

	if inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: audioeval -input <dir> [-output <csv>] [-agreement]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var cfg config.AudioConfig
	if err := config.Load(&cfg, config.WithConfigFile(configFile), config.WithEnvFile(envFile)); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyDefaults()
	if agreement {
		cfg.Agreement = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging).WithComponent("audioeval")
	log.Info("configuration loaded", map[string]interface{}{
		"sarvam_key": util.MaskSecret(cfg.SarvamAPIKey, 4),
		"gemini_key": util.MaskSecret(cfg.GeminiAPIKey, 4),
		"version":    version.Short(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline, err := buildPipeline(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build pipeline")
	}

	start := time.Now()
	if err := pipeline.Run(ctx, inputDir, outputCSV); err != nil {
		log.WithError(err).Fatal("audio batch failed")
	}
	log.Info("done", map[string]interface{}{
		"output":  outputCSV,
		"elapsed": time.Since(start).String(),
	})
}

func buildPipeline(cfg config.AudioConfig, log *logger.Logger) (*batch.AudioPipeline, error) {
	prober := &audio.FFProbe{Binary: cfg.FFProbePath}

	sarvamProvider, err := sarvam.New(sarvam.Config{
		APIKey:         cfg.SarvamAPIKey,
		Model:          cfg.SarvamModel,
		PricePerSecond: cfg.SarvamPricePerSecond,
	}, prober)
	if err != nil {
		return nil, err
	}

	gen, err := genai.New(genai.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return nil, err
	}

	geminiProvider, err := gemini.New(gemini.Config{
		MaxAttempts:    cfg.RetryMaxAttempts,
		InitialBackoff: cfg.RetryInitialBackoff,
	}, gen, prober, log)
	if err != nil {
		return nil, err
	}

	registry := stt.NewRegistry()
	if err := registry.Register(sarvamProvider); err != nil {
		return nil, err
	}
	if err := registry.Register(geminiProvider); err != nil {
		return nil, err
	}
	log.Info("speech providers registered", map[string]interface{}{
		"providers": registry.Names(),
	})

	primary, err := registry.Get(sarvam.ProviderName)
	if err != nil {
		return nil, err
	}
	secondary, err := registry.Get(gemini.ProviderName)
	if err != nil {
		return nil, err
	}

	translator, err := translate.New(gen, pricing.DefaultTokenPrices())
	if err != nil {
		return nil, err
	}

	return &batch.AudioPipeline{
		Sarvam:     primary,
		Gemini:     secondary,
		Translator: translator,
		Agreement:  cfg.Agreement,
		Log:        log,
	}, nil
}
