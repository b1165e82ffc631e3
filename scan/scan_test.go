package scan

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFiles_FiltersByExtensionRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.wav"))
	writeFile(t, filepath.Join(root, "a.MP3"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "nested", "c.flac"))
	writeFile(t, filepath.Join(root, "nested", "skip.json"))

	files, err := Files(root, AudioExtensions)
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("found %d files, want 3", len(files))
	}
	// Sorted by name.
	if files[0].Name != "a.MP3" || files[1].Name != "b.wav" || files[2].Name != "c.flac" {
		t.Errorf("order = %s, %s, %s", files[0].Name, files[1].Name, files[2].Name)
	}
}

func TestFiles_MissingRoot(t *testing.T) {
	if _, err := Files("/does/not/exist", AudioExtensions); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFiles_RootIsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "file.wav")
	writeFile(t, path)
	if _, err := Files(path, AudioExtensions); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestWriteManifest(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, "story_files.csv")

	files := []File{
		{Name: "a.txt", Path: "/stories/a.txt"},
		{Name: "b.txt", Path: "/stories/b.txt"},
	}
	if err := WriteManifest(manifest, files); err != nil {
		t.Fatalf("WriteManifest() error: %v", err)
	}

	f, err := os.Open(manifest)
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("manifest has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "filename" || rows[0][1] != "filepath" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "a.txt" || rows[1][1] != "/stories/a.txt" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestTitleToFilename(t *testing.T) {
	cases := []struct {
		title, want string
	}{
		{"A Butterfly Smile", "a-butterfly-smile.txt"},
		{"Let's Play", "let-s-play.txt"},
		{"Rose and Rocky's War on Insects", "rose-and-rocky-s-war-on-insects.txt"},
		{"How Heavy is Air", "how-heavy-is-air.txt"},
		{"  Spaced  Out  ", "spaced-out.txt"},
	}
	for _, tc := range cases {
		if got := TitleToFilename(tc.title); got != tc.want {
			t.Errorf("TitleToFilename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestFilterByTitles(t *testing.T) {
	files := []File{
		{Name: "001-a-butterfly-smile.txt"},
		{Name: "002-unlisted-story.txt"},
		{Name: "003-how-heavy-is-air.txt"},
		{Name: "no-prefix.txt"},
		{Name: "plainname.txt"},
	}
	titles := []string{"A Butterfly Smile", "How Heavy is Air"}

	got := FilterByTitles(files, titles)
	if len(got) != 2 {
		t.Fatalf("kept %d files, want 2", len(got))
	}
	if got[0].Name != "001-a-butterfly-smile.txt" || got[1].Name != "003-how-heavy-is-air.txt" {
		t.Errorf("kept = %v, %v", got[0].Name, got[1].Name)
	}
}
