package media

import "context"

// Analyzer labels an image with keywords.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) ([]string, error)
}

// StubKeywords is what StubAnalyzer returns for every image.
var StubKeywords = []string{"Nature", "Travel", "Adventure"}

// StubAnalyzer does no analysis; it always returns StubKeywords.
type StubAnalyzer struct{}

func (StubAnalyzer) Analyze(context.Context, []byte) ([]string, error) {
	out := make([]string, len(StubKeywords))
	copy(out, StubKeywords)
	return out, nil
}
