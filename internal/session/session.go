// Package session tracks one in-progress download request per user,
// from an accepted link to the terminal outcome of a download attempt.
package session

import (
	"errors"

	"github.com/lexcor1234/telegram-bot/internal/ytdl"
)

// State is where a session sits in the interaction flow. A session only
// exists between an accepted link and the end of a download attempt, so
// there is no stored Idle or Terminal state.
type State int

const (
	StateAwaitingFormat State = iota + 1
	StateAwaitingQuality
	StateDownloading
)

func (s State) String() string {
	switch s {
	case StateAwaitingFormat:
		return "awaiting_format"
	case StateAwaitingQuality:
		return "awaiting_quality"
	case StateDownloading:
		return "downloading"
	default:
		return "unknown"
	}
}

// ErrBadTransition rejects a choice that is not valid in the session's
// current state, e.g. a quality press before a format was picked.
var ErrBadTransition = errors.New("session: choice not valid in current state")

// Session is the per-user request state. Info is immutable once set;
// Quality only carries meaning on the video path.
type Session struct {
	URL     string
	Info    *ytdl.Metadata
	Format  ytdl.Format
	Quality string
	State   State
}

// New starts a session for an accepted link, waiting on a format choice.
func New(url string, info *ytdl.Metadata) *Session {
	return &Session{URL: url, Info: info, State: StateAwaitingFormat}
}

// ChooseFormat applies a format choice. Audio needs no quality choice
// and moves straight to downloading.
func (s *Session) ChooseFormat(f ytdl.Format) error {
	if s.State != StateAwaitingFormat {
		return ErrBadTransition
	}
	s.Format = f
	if f == ytdl.FormatAudio {
		s.Quality = ytdl.QualityAudio
		s.State = StateDownloading
		return nil
	}
	s.State = StateAwaitingQuality
	return nil
}

// ChooseQuality applies a quality choice on the video path.
func (s *Session) ChooseQuality(quality string) error {
	if s.State != StateAwaitingQuality {
		return ErrBadTransition
	}
	s.Quality = quality
	s.State = StateDownloading
	return nil
}
