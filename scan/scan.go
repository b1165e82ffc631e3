// Package scan enumerates pipeline input files: audio files by extension
// for the transcription pipeline and story text files for the meta-tag
// pipeline, with an optional title whitelist.
package scan

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/kavyahq/storyeval/errors"
)

// AudioExtensions are the audio file extensions the pipeline accepts.
var AudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".flac": true,
}

// TextExtensions are the story file extensions the pipeline accepts.
var TextExtensions = map[string]bool{
	".txt": true,
}

// File is one discovered input file.
type File struct {
	// Name is the base file name.
	Name string
	// Path is the full path to the file.
	Path string
}

// Files walks root recursively and returns every regular file whose
// extension (lowercased) is in exts, sorted by name for deterministic
// batch order.
func Files(root string, exts map[string]bool) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperrors.LocalIO(root, err)
	}
	if !info.IsDir() {
		return nil, apperrors.Config("input path is not a directory: " + root)
	}

	var out []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			out = append(out, File{Name: d.Name(), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.LocalIO(root, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WriteManifest writes the discovered files as a two-column CSV
// (filename, filepath), matching the intermediate manifest the meta-tag
// pipeline records before processing.
func WriteManifest(path string, files []File) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.LocalIO(path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "filepath"}); err != nil {
		return err
	}
	for _, file := range files {
		if err := w.Write([]string{file.Name, file.Path}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// TitleToFilename converts a story title to its kebab-case .txt filename:
// lowercased, runs of non-alphanumerics collapsed to single dashes,
// leading and trailing dashes stripped.
func TitleToFilename(title string) string {
	name := strings.ToLower(title)
	name = nonAlnum.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	return name + ".txt"
}

// FilterByTitles keeps only files whose name, after the leading
// prefix up to the first dash is removed, matches one of the whitelisted
// titles in kebab-case form. Story files are named "<id>-<kebab-title>.txt".
func FilterByTitles(files []File, titles []string) []File {
	allowed := make(map[string]bool, len(titles))
	for _, t := range titles {
		allowed[TitleToFilename(t)] = true
	}

	var out []File
	for _, f := range files {
		parts := strings.SplitN(f.Name, "-", 2)
		if len(parts) < 2 {
			continue
		}
		if allowed[parts[1]] {
			out = append(out, f)
		}
	}
	return out
}
