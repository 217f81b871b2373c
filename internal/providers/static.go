package providers

import "context"

// StaticStressProvider returns a fixed multiplier, used for offline mode
// and deterministic tests.
type StaticStressProvider struct {
	Multiplier float64
}

func (p StaticStressProvider) CurrentMultiplier(ctx context.Context) (float64, error) {
	return p.Multiplier, nil
}

// StaticScoreProvider returns a fixed score per library name, with a
// default for names not in the table.
type StaticScoreProvider struct {
	Scores  map[string]int
	Default int
}

func (p StaticScoreProvider) LibraryScore(ctx context.Context, name string) (int, error) {
	if s, ok := p.Scores[name]; ok {
		return s, nil
	}
	return p.Default, nil
}
