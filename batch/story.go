package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/metatag"
	"github.com/kavyahq/storyeval/report"
	"github.com/kavyahq/storyeval/scan"
)

// defaultStoryLimit caps a batch when no explicit limit is given.
const defaultStoryLimit = 50

// defaultManifestName is the discovered-files CSV written next to the
// output CSV when no explicit manifest path is given.
const defaultManifestName = "story_files.csv"

// StoryPipeline generates meta-tag records for every story file in a
// directory and writes them as CSV plus a JSON mirror.
type StoryPipeline struct {
	// Generator produces a record per story.
	Generator *metatag.Generator
	// Titles, when non-empty, whitelists stories by title: only files
	// named "<id>-<kebab-title>.txt" for a listed title are processed.
	Titles []string
	// Limit caps how many stories are processed. Zero means the default cap.
	Limit int
	// ManifestPath overrides where the discovered-files CSV is written
	// before processing starts. Empty means story_files.csv next to the
	// output CSV.
	ManifestPath string
	// Log may be nil.
	Log *logger.Logger
}

// Run processes story files under inputDir and writes outputCSV and
// outputJSON.
func (p *StoryPipeline) Run(ctx context.Context, inputDir, outputCSV, outputJSON string) error {
	log := p.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("batch.story").WithFields(map[string]interface{}{
		"run_id": uuid.NewString(),
	})

	files, err := scan.Files(inputDir, scan.TextExtensions)
	if err != nil {
		return err
	}
	manifest := p.ManifestPath
	if manifest == "" {
		manifest = filepath.Join(filepath.Dir(outputCSV), defaultManifestName)
	}
	if err := scan.WriteManifest(manifest, files); err != nil {
		return err
	}
	log.Info("wrote file manifest", map[string]interface{}{
		"manifest": manifest,
		"files":    len(files),
	})

	if len(p.Titles) > 0 {
		files = scan.FilterByTitles(files, p.Titles)
	}

	limit := p.Limit
	if limit <= 0 || limit > len(files) {
		limit = len(files)
		if p.Limit <= 0 && limit > defaultStoryLimit {
			limit = defaultStoryLimit
		}
	}
	files = files[:limit]

	log.Info("starting story batch", map[string]interface{}{
		"input_dir": inputDir,
		"stories":   len(files),
	})

	rows := make([]report.MetaTagRow, 0, len(files))
	for i, file := range files {
		record := p.processStory(ctx, file, log)
		rows = append(rows, report.MetaTagRow{Filename: file.Name, Record: record})

		log.Info("story processed", map[string]interface{}{
			"progress":          i + 1,
			"total":             len(files),
			"filename":          file.Name,
			"character_primary": clip(record["character_primary"], 50),
			"theme_primary":     clip(record["theme_primary"], 50),
			"keywords":          clip(record["keywords"], 50),
		})
	}

	if err := report.WriteMetaTagCSV(outputCSV, rows); err != nil {
		return err
	}
	if err := report.WriteMetaTagJSON(outputJSON, rows); err != nil {
		return err
	}

	log.Info("story batch completed", map[string]interface{}{
		"stories":     len(rows),
		"output_csv":  outputCSV,
		"output_json": outputJSON,
	})
	return nil
}

// processStory reads and tags one story. Failures degrade to error
// records so the batch continues.
func (p *StoryPipeline) processStory(ctx context.Context, file scan.File, log *logger.Logger) metatag.Record {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		log.WithError(err).Error("cannot read story file", map[string]interface{}{
			"filename": file.Name,
		})
		return metatag.FailureRecord("Could not read file")
	}

	record, err := p.Generator.Generate(ctx, strings.TrimSpace(string(content)), file.Name)
	if err != nil {
		log.WithError(err).Error("meta-tag generation failed", map[string]interface{}{
			"filename": file.Name,
		})
		return metatag.FailureRecord(err.Error())
	}
	return record
}

// clip bounds a string for log output without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
