package heat

import (
	"context"
	"fmt"
	"log/slog"
)

type Analysis struct {
	HeatLevel   int      `json:"heat_level"`
	Label       string   `json:"label"`
	MinScoville int      `json:"min_scoville"`
	MaxScoville int      `json:"max_scoville"`
	FlavorNotes []string `json:"flavor_notes"`
	Summary     string   `json:"summary"`
	Source      string   `json:"-"`
}

// Analyzer scores a complete, validated set of answers.
type Analyzer interface {
	Analyze(ctx context.Context, a Answers) (Analysis, error)
}

func (a Analysis) validate() error {
	if a.HeatLevel < 1 || a.HeatLevel > 5 {
		return fmt.Errorf("heat level %d out of range", a.HeatLevel)
	}
	if a.Label == "" {
		return fmt.Errorf("missing label")
	}
	if a.MinScoville < 0 || a.MaxScoville < a.MinScoville {
		return fmt.Errorf("bad scoville range %d..%d", a.MinScoville, a.MaxScoville)
	}
	return nil
}

// Fallback tries Primary and uses Secondary when it errors.
type Fallback struct {
	Primary   Analyzer
	Secondary Analyzer
	Log       *slog.Logger
}

func (f Fallback) Analyze(ctx context.Context, a Answers) (Analysis, error) {
	res, err := f.Primary.Analyze(ctx, a)
	if err == nil {
		return res, nil
	}
	if f.Log != nil {
		f.Log.WarnContext(ctx, "heat analyzer fallback", "err", err)
	}
	return f.Secondary.Analyze(ctx, a)
}
