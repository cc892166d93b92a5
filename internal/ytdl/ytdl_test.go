package ytdl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFetchArgs(t *testing.T) {
	const tmpl = "downloads/x/%(title)s.%(ext)s"
	const url = "https://youtu.be/abc"

	tests := []struct {
		name     string
		format   Format
		quality  string
		expected []string
	}{
		{
			name:    "audio",
			format:  FormatAudio,
			quality: QualityAudio,
			expected: []string{
				"--no-playlist", "--no-warnings", "-o", tmpl,
				"-f", "bestaudio/best",
				"-x", "--audio-format", "mp3", "--audio-quality", "192K",
				url,
			},
		},
		{
			name:    "video best has no height constraint",
			format:  FormatVideo,
			quality: QualityBest,
			expected: []string{
				"--no-playlist", "--no-warnings", "-o", tmpl,
				"-f", "bestvideo+bestaudio/best",
				"--merge-output-format", "mp4",
				url,
			},
		},
		{
			name:    "video 1080",
			format:  FormatVideo,
			quality: "1080",
			expected: []string{
				"--no-playlist", "--no-warnings", "-o", tmpl,
				"-f", "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best",
				"--merge-output-format", "mp4",
				url,
			},
		},
		{
			name:    "video 480",
			format:  FormatVideo,
			quality: "480",
			expected: []string{
				"--no-playlist", "--no-warnings", "-o", tmpl,
				"-f", "bestvideo[height<=480]+bestaudio/best[height<=480]/best",
				"--merge-output-format", "mp4",
				url,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := fetchArgs(tmpl, test.format, test.quality, url)
			if !reflect.DeepEqual(args, test.expected) {
				t.Errorf("fetchArgs() = %v, expected %v", args, test.expected)
			}
		})
	}
}

func TestExpectedName(t *testing.T) {
	if name := expectedName("My Clip", FormatVideo); name != "My Clip.mp4" {
		t.Errorf("expectedName(video) = %q", name)
	}
	if name := expectedName("My Clip", FormatAudio); name != "My Clip.mp3" {
		t.Errorf("expectedName(audio) = %q", name)
	}
}

func TestResolveOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "My Clip.mp4")

	path, err := resolveOutput(dir, "My Clip.mp4")
	if err != nil {
		t.Fatalf("resolveOutput failed on exact match: %v", err)
	}
	if filepath.Base(path) != "My Clip.mp4" {
		t.Errorf("resolveOutput = %q, expected exact match", path)
	}
}

func TestResolveOutputFallbackScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "My Clip (official).mp4")

	// The extractor normalized the filename; the scan must still find it.
	path, err := resolveOutput(dir, "My Clip.mp4")
	if err != nil {
		t.Fatalf("resolveOutput failed on substring match: %v", err)
	}
	if filepath.Base(path) != "My Clip (official).mp4" {
		t.Errorf("resolveOutput = %q, expected substring match", path)
	}
}

func TestResolveOutputShortenedName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "My Clip.mp3")

	path, err := resolveOutput(dir, "My Clip (feat. somebody) [HQ].mp3")
	if err != nil {
		t.Fatalf("resolveOutput failed on shortened name: %v", err)
	}
	if filepath.Base(path) != "My Clip.mp3" {
		t.Errorf("resolveOutput = %q, expected shortened match", path)
	}
}

func TestResolveOutputMiss(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unrelated.mp4")

	if _, err := resolveOutput(dir, "My Clip.mp4"); err != ErrNoOutput {
		t.Errorf("resolveOutput = %v, expected ErrNoOutput", err)
	}
}

func TestMetadataDecode(t *testing.T) {
	raw := `{"id":"abc123","title":"A Video","uploader":"someone","duration":212.5,"thumbnail":"https://i.example/t.jpg"}`

	var meta Metadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	if meta.ID != "abc123" || meta.Title != "A Video" || meta.Uploader != "someone" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if int(meta.Duration) != 212 {
		t.Errorf("duration = %v, expected 212", meta.Duration)
	}
}

func TestExtractURL(t *testing.T) {
	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"https://youtu.be/abc", "https://youtu.be/abc", true},
		{"check this out https://www.youtube.com/watch?v=abc now", "https://www.youtube.com/watch?v=abc", true},
		{"http://tiktok.com/@u/video/1", "http://tiktok.com/@u/video/1", true},
		{"no link here", "", false},
		{"", "", false},
		{"ftp://example.com/file", "", false},
	}

	for _, test := range tests {
		url, ok := ExtractURL(test.text)
		if url != test.expected || ok != test.ok {
			t.Errorf("ExtractURL(%q) = (%q, %v), expected (%q, %v)", test.text, url, ok, test.expected, test.ok)
		}
	}
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
