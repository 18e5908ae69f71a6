package media

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ayush/ai-diary/backend/internal/clock"
)

// File name prefixes for the two kinds of stored image.
const (
	uploadPrefix   = "upload"
	analyzedPrefix = "analyzed"
	fileExt        = ".png"
)

// Sequencer counts how many names were issued for a prefix within one
// millisecond. The first call for a pair returns 1.
type Sequencer interface {
	Next(ctx context.Context, prefix string, ms int64) (int64, error)
}

// LocalSequencer is an in-process Sequencer. It keeps counts for the
// current millisecond only, so ms must not decrease between calls; Namer
// guarantees that.
type LocalSequencer struct {
	mu     sync.Mutex
	ms     int64
	counts map[string]int64
}

func NewLocalSequencer() *LocalSequencer {
	return &LocalSequencer{counts: make(map[string]int64)}
}

func (s *LocalSequencer) Next(_ context.Context, prefix string, ms int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms > s.ms {
		s.ms = ms
		clear(s.counts)
	}
	s.counts[prefix]++
	return s.counts[prefix], nil
}

// Namer derives upload file names from the clock's millisecond timestamp,
// e.g. upload_1705314600000.png. Names issued within the same millisecond
// get a _<n> suffix from the second one on. If the clock steps backwards the
// last timestamp is reused, so names stay unique within the process.
type Namer struct {
	clock clock.Clock
	seq   Sequencer

	mu   sync.Mutex
	last int64
}

func NewNamer(clk clock.Clock, seq Sequencer) *Namer {
	return &Namer{clock: clk, seq: seq}
}

func (n *Namer) stamp() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ms := n.clock.Now().UnixMilli(); ms > n.last {
		n.last = ms
	}
	return n.last
}

func (n *Namer) Name(ctx context.Context, prefix string) (string, error) {
	ms := n.stamp()
	i, err := n.seq.Next(ctx, prefix, ms)
	if err != nil {
		return "", fmt.Errorf("file name sequence: %w", err)
	}
	base := prefix + "_" + strconv.FormatInt(ms, 10)
	if i <= 1 {
		return base + fileExt, nil
	}
	return fmt.Sprintf("%s_%d%s", base, i, fileExt), nil
}
