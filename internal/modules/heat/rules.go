package heat

import (
	"context"
	"fmt"
	"strings"
)

type band struct {
	Label       string
	MinScoville int
	MaxScoville int
}

var bands = [6]band{
	1: {"Mild Explorer", 0, 2500},
	2: {"Warm Seeker", 2500, 15000},
	3: {"Heat Enthusiast", 15000, 100000},
	4: {"Fire Chaser", 100000, 500000},
	5: {"Inferno Legend", 500000, 2500000},
}

// BandFor returns label and scoville range for a heat level 1..5.
func BandFor(level int) (string, int, int) {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	b := bands[level]
	return b.Label, b.MinScoville, b.MaxScoville
}

// RuleAnalyzer averages option weights, rounding half up.
type RuleAnalyzer struct{}

func (RuleAnalyzer) Analyze(_ context.Context, a Answers) (Analysis, error) {
	if err := ValidateAnswers(a); err != nil {
		return Analysis{}, err
	}

	sum := 0
	var notes []string
	seen := map[string]bool{}
	for _, q := range Questions {
		o, _ := findOption(q.ID, a[q.ID])
		sum += o.Weight
		for _, n := range o.Notes {
			if !seen[n] {
				seen[n] = true
				notes = append(notes, n)
			}
		}
	}
	n := len(Questions)
	level := (2*sum + n) / (2 * n)
	label, lo, hi := BandFor(level)

	res := Analysis{
		HeatLevel:   level,
		Label:       label,
		MinScoville: lo,
		MaxScoville: hi,
		FlavorNotes: notes,
		Source:      SourceRules,
	}
	res.Summary = fmt.Sprintf("You're a %s: sauces between %d and %d Scoville units should suit you.", label, lo, hi)
	if len(notes) > 0 {
		res.Summary += " Look for " + strings.Join(notes, ", ") + " flavors."
	}
	return res, nil
}
