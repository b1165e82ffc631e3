// Package audio probes local audio files for the metadata the cost
// accountant needs: playback duration and MIME type.
package audio

import (
	"context"
	"fmt"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// fallbackSecondsPerMiB approximates duration when decoding fails:
	// 1 MiB of typical compressed audio is roughly one minute.
	fallbackSecondsPerMiB = 60.0
	// minFallbackSeconds floors the estimate so a failed probe never
	// cost-zeros a file.
	minFallbackSeconds = 1.0
)

// Prober reports the duration of an audio file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFProbe measures duration by shelling out to ffprobe.
// On any probe failure callers should fall back to EstimateDuration.
type FFProbe struct {
	// Binary overrides the ffprobe executable name. Defaults to "ffprobe".
	Binary string
}

// Duration runs ffprobe and parses the stream duration in seconds.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	bin := p.Binary
	if bin == "" {
		bin = "ffprobe"
	}

	// ffprobe -v error -show_entries format=duration -of csv=p=0 input
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: parse duration %q: %w", path, out, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("ffprobe %s: non-positive duration %f", path, seconds)
	}
	return seconds, nil
}

// EstimateDuration derives a deterministic duration estimate from file size,
// floored at one second.
func EstimateDuration(sizeBytes int64) float64 {
	est := float64(sizeBytes) / (1024 * 1024) * fallbackSecondsPerMiB
	if est < minFallbackSeconds {
		return minFallbackSeconds
	}
	return est
}

// DurationOrEstimate probes the file; when probing fails it falls back to the
// size estimate so the pipeline keeps a usable duration for every file.
func DurationOrEstimate(ctx context.Context, p Prober, path string) float64 {
	if p != nil {
		if d, err := p.Duration(ctx, path); err == nil {
			return d
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return minFallbackSeconds
	}
	return EstimateDuration(info.Size())
}

// DetectMIME guesses a file's MIME type from its extension, defaulting to
// application/octet-stream for unknown extensions.
func DetectMIME(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	// Register the audio extensions the pipeline accepts; the stdlib table
	// misses several of them on minimal systems.
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
