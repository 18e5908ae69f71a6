package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/ai-diary/backend/internal/clock"
)

func TestNamer(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed()
	n := NewNamer(clk, NewLocalSequencer())
	ms := "1705314600000"

	first, err := n.Name(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Equal(t, "upload_"+ms+".png", first)

	second, err := n.Name(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Equal(t, "upload_"+ms+"_2.png", second)

	analyzed, err := n.Name(ctx, analyzedPrefix)
	require.NoError(t, err)
	assert.Equal(t, "analyzed_"+ms+".png", analyzed)

	third, err := n.Name(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Equal(t, "upload_"+ms+"_3.png", third)

	analyzed2, err := n.Name(ctx, analyzedPrefix)
	require.NoError(t, err)
	assert.Equal(t, "analyzed_"+ms+"_2.png", analyzed2)

	clk.Advance(time.Millisecond)
	next, err := n.Name(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Equal(t, "upload_1705314600001.png", next)
}

func TestNamer_ClockStepsBack(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fixed()
	n := NewNamer(clk, NewLocalSequencer())

	seen := map[string]bool{}
	for _, step := range []time.Duration{0, time.Millisecond, -time.Millisecond, 0, 2 * time.Millisecond} {
		clk.Advance(step)
		for _, prefix := range []string{uploadPrefix, analyzedPrefix, uploadPrefix} {
			name, err := n.Name(ctx, prefix)
			require.NoError(t, err)
			assert.False(t, seen[name], "name %s issued twice", name)
			seen[name] = true
		}
	}
	assert.Len(t, seen, 15)
}

func TestLocalSequencer(t *testing.T) {
	ctx := context.Background()
	s := NewLocalSequencer()

	next := func(prefix string, ms int64) int64 {
		i, err := s.Next(ctx, prefix, ms)
		require.NoError(t, err)
		return i
	}
	assert.Equal(t, int64(1), next("upload", 10))
	assert.Equal(t, int64(1), next("analyzed", 10))
	assert.Equal(t, int64(2), next("upload", 10))
	assert.Equal(t, int64(2), next("analyzed", 10))
	assert.Equal(t, int64(1), next("upload", 11))
	assert.Equal(t, int64(1), next("analyzed", 11))
}

type failingSequencer struct{}

func (failingSequencer) Next(context.Context, string, int64) (int64, error) {
	return 0, errors.New("redis down")
}

func TestNamer_SequencerError(t *testing.T) {
	_, err := NewNamer(clock.Fixed(), failingSequencer{}).Name(context.Background(), uploadPrefix)
	assert.ErrorContains(t, err, "redis down")
}

func TestStubAnalyzer(t *testing.T) {
	kw, err := StubAnalyzer{}.Analyze(context.Background(), []byte("anything"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nature", "Travel", "Adventure"}, kw)

	kw[0] = "changed"
	again, _ := StubAnalyzer{}.Analyze(context.Background(), nil)
	assert.Equal(t, "Nature", again[0])
}
