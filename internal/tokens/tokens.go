// Package tokens estimates token counts for prompt text.
//
// The tiktoken cl100k_base encoding is loaded lazily on first use. When it
// cannot be loaded (offline, restricted sandbox) the counter falls back to a
// 4-characters-per-token heuristic, so counting never fails.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

const encodingName = "cl100k_base"

// Counter counts tokens in text.
type Counter interface {
	Count(text string) int
}

// Heuristic approximates tokens as one per four characters, rounded up.
type Heuristic struct{}

// Count implements Counter.
func (Heuristic) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// Tiktoken counts with the cl100k_base BPE encoding.
type Tiktoken struct {
	once     sync.Once
	enc      *tiktoken.Tiktoken
	fallback Heuristic
}

// NewTiktoken returns a lazily initialized tiktoken counter.
func NewTiktoken() *Tiktoken {
	return &Tiktoken{}
}

// Count implements Counter.
func (t *Tiktoken) Count(text string) int {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			log.Debug().Err(err).Str("encoding", encodingName).Msg("tiktoken unavailable, using heuristic token count")
			return
		}
		t.enc = enc
	})
	if t.enc == nil {
		return t.fallback.Count(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}
