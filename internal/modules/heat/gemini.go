package heat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer asks a Gemini model for the profile as JSON.
type GeminiAnalyzer struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiAnalyzer{models: client.Models, model: model, timeout: 15 * time.Second}, nil
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, a Answers) (Analysis, error) {
	if err := ValidateAnswers(a); err != nil {
		return Analysis{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(a)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "```json"), "```")

	var out Analysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return Analysis{}, fmt.Errorf("gemini returned malformed JSON: %w", err)
	}
	if err := out.validate(); err != nil {
		return Analysis{}, fmt.Errorf("gemini returned unusable profile: %w", err)
	}
	out.Source = SourceGemini
	return out, nil
}

func buildPrompt(a Answers) string {
	var b strings.Builder
	b.WriteString("You are the heat sommelier of Salt & Scoville, a hot sauce shop.\n")
	b.WriteString("Classify the customer's heat preference from these quiz answers:\n\n")
	for _, q := range Questions {
		o, _ := findOption(q.ID, a[q.ID])
		fmt.Fprintf(&b, "- %s %s\n", q.Prompt, o.Label)
	}
	b.WriteString("\nReply with JSON only, shaped as\n")
	b.WriteString(`{"heat_level": 1-5, "label": string, "min_scoville": int, "max_scoville": int, "flavor_notes": [string], "summary": string}`)
	b.WriteString("\nUse these bands: ")
	for lvl := 1; lvl <= 5; lvl++ {
		label, lo, hi := BandFor(lvl)
		fmt.Fprintf(&b, "%d=%s (%d-%d SHU)", lvl, label, lo, hi)
		if lvl < 5 {
			b.WriteString(", ")
		}
	}
	b.WriteString(".\nKeep the summary to two sentences.\n")
	return b.String()
}
