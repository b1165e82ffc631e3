// Package report serializes batch results: the audio pipeline's CSV with
// a trailing totals row, and the meta-tag pipeline's CSV with its JSON
// mirror.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/pricing"
)

// errorCell marks cells with no usable value on an error row.
const errorCell = "N/A"

// AudioRow is one audio file's evaluation result. Err set means the file
// failed; the remaining fields are ignored and the row is written with
// the error message in both response columns.
type AudioRow struct {
	Filename string
	Err      error

	DurationSeconds float64
	// SarvamResponse is the Sarvam transcript, replaced by its English
	// translation when one was produced.
	SarvamResponse string
	// SarvamLatency and SarvamCost combine transcription and translation.
	SarvamLatency time.Duration
	SarvamCost    float64
	// TranslationNeeded is true when the detected language was not English.
	TranslationNeeded bool
	GeminiResponse    string
	GeminiLatency     time.Duration
	GeminiCost        float64

	// WER and CER are cross-provider agreement rates, written only when
	// the report has agreement columns enabled.
	WER float64
	CER float64
}

// audioHeader is the audio CSV column order.
var audioHeader = []string{
	"filename",
	"duration",
	"sarvam_response",
	"sarvam_total_latency",
	"sarvam_total_cost",
	"translation_needed",
	"gemini_response",
	"gemini_latency",
	"gemini_cost",
}

// agreementHeader extends the audio CSV when agreement metrics are on.
var agreementHeader = []string{"wer", "cer"}

// AudioCSVOptions controls optional audio report columns.
type AudioCSVOptions struct {
	// Agreement appends cross-provider wer/cer columns to every row.
	Agreement bool
}

// WriteAudioCSV writes one row per audio file plus a final TOTALS row.
// Latency and cost totals come from the accountant: the Sarvam columns
// combine the sarvam and translation buckets.
func WriteAudioCSV(path string, rows []AudioRow, acct *pricing.Accountant, opts AudioCSVOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.LocalIO(path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	header := audioHeader
	if opts.Agreement {
		header = append(append([]string{}, audioHeader...), agreementHeader...)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		if err := w.Write(audioRecord(row, opts)); err != nil {
			return err
		}
	}

	if err := w.Write(totalsRecord(acct, opts)); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func audioRecord(row AudioRow, opts AudioCSVOptions) []string {
	var rec []string
	if row.Err != nil {
		msg := "ERROR: " + row.Err.Error()
		rec = []string{
			row.Filename,
			errorCell,
			msg,
			errorCell,
			errorCell,
			errorCell,
			msg,
			errorCell,
			errorCell,
		}
	} else {
		translated := "No"
		if row.TranslationNeeded {
			translated = "Yes"
		}
		rec = []string{
			row.Filename,
			fmt.Sprintf("%.1fs", row.DurationSeconds),
			row.SarvamResponse,
			formatLatency(row.SarvamLatency),
			formatCost(row.SarvamCost),
			translated,
			row.GeminiResponse,
			formatLatency(row.GeminiLatency),
			formatCost(row.GeminiCost),
		}
	}

	if opts.Agreement {
		if row.Err != nil {
			rec = append(rec, errorCell, errorCell)
		} else {
			rec = append(rec, fmt.Sprintf("%.4f", row.WER), fmt.Sprintf("%.4f", row.CER))
		}
	}
	return rec
}

func totalsRecord(acct *pricing.Accountant, opts AudioCSVOptions) []string {
	sarvam := acct.Totals(pricing.BucketSarvam)
	translation := acct.Totals(pricing.BucketTranslation)
	gemini := acct.Totals(pricing.BucketGemini)

	rec := []string{
		"TOTALS",
		"",
		"",
		formatLatency(sarvam.Latency + translation.Latency),
		formatCost(sarvam.Cost + translation.Cost),
		"",
		"",
		formatLatency(gemini.Latency),
		formatCost(gemini.Cost),
	}
	if opts.Agreement {
		rec = append(rec, "", "")
	}
	return rec
}

func formatLatency(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func formatCost(c float64) string {
	return fmt.Sprintf("$%.6f", c)
}
