// Package ytdl wraps the yt-dlp binary behind two operations: a
// no-download metadata probe and a fetch that downloads and transcodes
// a link into a local file.
package ytdl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Format is the kind of artifact the user asked for.
type Format string

const (
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
)

// Quality values accepted by Fetch. QualityAudio is the sentinel used on
// the audio path, where the quality is fixed by the mp3 postprocessor.
const (
	QualityBest  = "best"
	QualityAudio = "audio"
)

var (
	// ErrNotExtractable marks probe failures: bad or unsupported links,
	// private or removed media.
	ErrNotExtractable = errors.New("ytdl: link is not extractable")

	// ErrNoOutput marks a fetch that yt-dlp reported successful but left
	// no locatable file behind.
	ErrNoOutput = errors.New("ytdl: no output file after download")
)

// Metadata is the probe result, used only for display.
type Metadata struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// Client shells out to yt-dlp. Dir is the directory downloads land in;
// every fetch attempt gets its own subdirectory there.
type Client struct {
	Dir string
}

// Probe queries metadata for url without downloading anything. Transient
// extractor hiccups are retried twice with exponential backoff; download
// attempts are never retried, only the probe.
func (c *Client) Probe(ctx context.Context, url string) (*Metadata, error) {
	var meta *Metadata

	operation := func() error {
		cmd := exec.CommandContext(ctx, "yt-dlp", "-J", "--no-playlist", url)
		out, err := cmd.Output()
		if err != nil {
			log.Printf("yt-dlp probe error for %s: %v", url, err)
			return err
		}
		var m Metadata
		if err := json.Unmarshal(out, &m); err != nil {
			return backoff.Permanent(fmt.Errorf("decode yt-dlp json: %w", err))
		}
		meta = &m
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(2*time.Second),
	), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotExtractable, err)
	}
	return meta, nil
}
