package heat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

var mildAnswers = Answers{
	"tolerance":       "none",
	"favorite_pepper": "poblano",
	"usage":           "dip",
	"flavor":          "sweet",
	"reaction":        "water",
	"experience":      "new",
}

func TestGeminiAnalyzer(t *testing.T) {
	fake := &fakeModels{text: "```json\n" +
		`{"heat_level": 2, "label": "Warm Seeker", "min_scoville": 2500, "max_scoville": 15000, "flavor_notes": ["earthy"], "summary": "Gentle."}` +
		"\n```"}
	g := &GeminiAnalyzer{models: fake, model: "test", timeout: time.Second}

	res, err := g.Analyze(context.Background(), mildAnswers)
	require.NoError(t, err)
	assert.Equal(t, 2, res.HeatLevel)
	assert.Equal(t, "Warm Seeker", res.Label)
	assert.Equal(t, []string{"earthy"}, res.FlavorNotes)
	assert.Equal(t, SourceGemini, res.Source)
	assert.Contains(t, fake.prompt, "Black pepper is plenty")
	assert.Contains(t, fake.prompt, "5=Inferno Legend")
}

func TestGeminiAnalyzerRejects(t *testing.T) {
	cases := map[string]*fakeModels{
		"transport": {err: errors.New("quota exceeded")},
		"not json":  {text: "I think you like it mild."},
		"bad level": {text: `{"heat_level": 9, "label": "x", "min_scoville": 0, "max_scoville": 1}`},
		"bad range": {text: `{"heat_level": 2, "label": "x", "min_scoville": 10, "max_scoville": 1}`},
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			g := &GeminiAnalyzer{models: fake, model: "test", timeout: time.Second}
			_, err := g.Analyze(context.Background(), mildAnswers)
			assert.Error(t, err)
		})
	}

	fake := &fakeModels{}
	g := &GeminiAnalyzer{models: fake, model: "test", timeout: time.Second}
	_, err := g.Analyze(context.Background(), Answers{"tolerance": "none"})
	var iae *InvalidAnswersError
	assert.ErrorAs(t, err, &iae)
	assert.Zero(t, fake.calls)
}

func TestNewGeminiAnalyzerRequiresKey(t *testing.T) {
	_, err := NewGeminiAnalyzer(context.Background(), "", "")
	assert.Error(t, err)
}
