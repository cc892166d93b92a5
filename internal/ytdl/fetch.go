package ytdl

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Fetch downloads url into a fresh attempt directory and returns the path
// of the produced file. The attempt directory is keyed by a random id so
// two users grabbing same-titled media never collide; the caller removes
// the whole directory once the file has been handled.
func (c *Client) Fetch(ctx context.Context, url string, meta *Metadata, format Format, quality string) (string, error) {
	attemptDir := filepath.Join(c.Dir, uuid.NewString())
	if err := os.MkdirAll(attemptDir, 0o755); err != nil {
		return "", fmt.Errorf("create attempt dir: %w", err)
	}

	args := fetchArgs(filepath.Join(attemptDir, "%(title)s.%(ext)s"), format, quality, url)
	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.RemoveAll(attemptDir)
		log.Printf("yt-dlp error for %s: %v\nOutput: %s", url, err, string(output))
		return "", fmt.Errorf("yt-dlp: %w", err)
	}

	title := ""
	if meta != nil {
		title = meta.Title
	}
	path, err := resolveOutput(attemptDir, expectedName(title, format))
	if err != nil {
		os.RemoveAll(attemptDir)
		return "", err
	}
	return path, nil
}

// fetchArgs builds the yt-dlp invocation for the chosen format and
// quality. Audio is always extracted to mp3 at 192K; video is merged
// into mp4, constrained by height unless quality is "best".
func fetchArgs(outputTemplate string, format Format, quality, url string) []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"-o", outputTemplate,
	}

	if format == FormatAudio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K",
		)
	} else {
		selector := "bestvideo+bestaudio/best"
		if quality != QualityBest {
			selector = fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best[height<=%s]/best", quality, quality)
		}
		args = append(args,
			"-f", selector,
			"--merge-output-format", "mp4",
		)
	}

	return append(args, url)
}

// expectedName is the filename the output template should produce for a
// title. yt-dlp normalizes some characters on its own, so the name is a
// best guess that resolveOutput falls back from.
func expectedName(title string, format Format) string {
	ext := ".mp4"
	if format == FormatAudio {
		ext = ".mp3"
	}
	return title + ext
}

// resolveOutput locates the produced file inside dir. The expected name
// is tried first; when the extractor normalized the filename, a scan for
// a base-name substring match recovers it.
func resolveOutput(dir, expected string) (string, error) {
	path := filepath.Join(dir, expected)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	base := strings.TrimSuffix(expected, filepath.Ext(expected))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || base == "" {
			continue
		}
		name := trimExt(entry.Name())
		if strings.Contains(name, base) || (name != "" && strings.Contains(base, name)) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", ErrNoOutput
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
