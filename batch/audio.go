// Package batch drives the two pipelines end to end: enumerate inputs,
// call the remote services per file with an error boundary around each
// one, accumulate cost and latency, and write the reports. No error ever
// aborts a batch; every input file yields exactly one output row.
package batch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/pricing"
	"github.com/kavyahq/storyeval/report"
	"github.com/kavyahq/storyeval/scan"
	"github.com/kavyahq/storyeval/stt"
	"github.com/kavyahq/storyeval/textmetrics"
	"github.com/kavyahq/storyeval/translate"
)

// AudioPipeline runs every audio file through both speech providers,
// translating non-English Sarvam output so both transcripts are
// comparable English text.
type AudioPipeline struct {
	// Sarvam is the duration-billed transcription provider.
	Sarvam stt.Provider
	// Gemini is the token-billed multimodal transcription provider.
	Gemini stt.Provider
	// Translator converts non-English Sarvam transcripts to English.
	Translator *translate.Translator
	// Agreement enables cross-provider wer/cer columns in the report.
	Agreement bool
	// Log may be nil.
	Log *logger.Logger
}

// Run processes every audio file under inputDir and writes the report
// CSV to outputCSV.
func (p *AudioPipeline) Run(ctx context.Context, inputDir, outputCSV string) error {
	log := p.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("batch.audio").WithFields(map[string]interface{}{
		"run_id": uuid.NewString(),
	})

	files, err := scan.Files(inputDir, scan.AudioExtensions)
	if err != nil {
		return err
	}
	log.Info("starting audio batch", map[string]interface{}{
		"input_dir": inputDir,
		"files":     len(files),
	})

	acct := pricing.NewAccountant()
	rows := make([]report.AudioRow, 0, len(files))

	for i, file := range files {
		row := p.processFile(ctx, inputDir, file, acct, log)
		rows = append(rows, row)

		fields := map[string]interface{}{
			"progress": i + 1,
			"total":    len(files),
			"filename": row.Filename,
		}
		if row.Err != nil {
			log.WithError(row.Err).Error("file failed", fields)
		} else {
			log.Info("file processed", fields)
		}
	}

	if err := report.WriteAudioCSV(outputCSV, rows, acct, report.AudioCSVOptions{Agreement: p.Agreement}); err != nil {
		return err
	}

	logSummary(log, outputCSV, len(rows), acct)
	return nil
}

// processFile evaluates one audio file. Every failure is folded into the
// returned row; nothing escapes to abort the batch.
func (p *AudioPipeline) processFile(ctx context.Context, inputDir string, file scan.File, acct *pricing.Accountant, log *logger.Logger) report.AudioRow {
	filename := file.Path
	if rel, err := filepath.Rel(inputDir, file.Path); err == nil {
		filename = rel
	}
	row := report.AudioRow{Filename: filename}

	sarvamRes, err := p.Sarvam.Transcribe(ctx, stt.Request{AudioPath: file.Path})
	if err != nil {
		row.Err = err
		return row
	}
	acct.Add(pricing.BucketSarvam, sarvamRes.Cost, sarvamRes.Latency)

	row.DurationSeconds = sarvamRes.DurationSeconds
	row.SarvamResponse = sarvamRes.Text
	row.SarvamLatency = sarvamRes.Latency
	row.SarvamCost = sarvamRes.Cost

	row.TranslationNeeded = !translate.IsEnglish(sarvamRes.Language)
	if row.TranslationNeeded {
		trRes := p.Translator.Translate(ctx, sarvamRes.Text, sarvamRes.Language)
		acct.Add(pricing.BucketTranslation, trRes.Cost, trRes.Latency)
		// The translation attempt is accounted even when it returns
		// nothing usable; the response column falls back to the
		// untranslated transcript and the file keeps processing.
		row.SarvamLatency += trRes.Latency
		row.SarvamCost += trRes.Cost
		if trRes.Text != "" {
			row.SarvamResponse = trRes.Text
		} else {
			log.Warn("translation returned no text, keeping original transcript", map[string]interface{}{
				"filename": filename,
				"language": sarvamRes.Language,
			})
		}
	}

	geminiRes, err := p.Gemini.Transcribe(ctx, stt.Request{AudioPath: file.Path})
	if err != nil {
		row.Err = err
		return row
	}
	acct.Add(pricing.BucketGemini, geminiRes.Cost, geminiRes.Latency)

	row.GeminiResponse = geminiRes.Text
	row.GeminiLatency = geminiRes.Latency
	row.GeminiCost = geminiRes.Cost

	if p.Agreement {
		row.WER = textmetrics.WER(row.SarvamResponse, row.GeminiResponse)
		row.CER = textmetrics.CER(row.SarvamResponse, row.GeminiResponse)
	}
	return row
}

func logSummary(log *logger.Logger, outputCSV string, files int, acct *pricing.Accountant) {
	sarvam := acct.Totals(pricing.BucketSarvam)
	translation := acct.Totals(pricing.BucketTranslation)
	gemini := acct.Totals(pricing.BucketGemini)

	fields := map[string]interface{}{
		"output":                  outputCSV,
		"files":                   files,
		"sarvam_cost":             sarvam.Cost,
		"sarvam_latency":          sarvam.Latency.String(),
		"translation_cost":        translation.Cost,
		"translation_latency":     translation.Latency.String(),
		"sarvam_combined_cost":    sarvam.Cost + translation.Cost,
		"sarvam_combined_latency": (sarvam.Latency + translation.Latency).String(),
		"gemini_cost":             gemini.Cost,
		"gemini_latency":          gemini.Latency.String(),
		"grand_total_cost":        acct.GrandTotalCost(),
	}
	if files > 0 {
		fields["avg_sarvam_latency"] = ((sarvam.Latency + translation.Latency) / time.Duration(files)).String()
		fields["avg_gemini_latency"] = (gemini.Latency / time.Duration(files)).String()
	}
	log.Info("audio batch completed", fields)
}
