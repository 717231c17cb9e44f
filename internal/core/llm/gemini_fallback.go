package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
)

const fallbackSystemPrompt = `You extract structured data from resume text.
Respond with a single JSON object and nothing else. Fields:
name, email, phone, location, url, objective (strings),
skills (array of strings),
education (array of {name, degree, gpa, date, start_date, end_date}),
experience (array of {company, title, date, start_date, end_date, description: array of strings}),
projects (array of {name, technologies, date, start_date, end_date, description}),
volunteer (same shape as experience),
achievements (array of {title, date, description}).
Use empty strings and empty arrays for anything missing. Do not invent content.`

// GeminiFallbackExtractor implements the LLM-based alternate extraction
// path: it asks the model for the same external shape the layout
// pipeline produces, so callers cannot tell the two paths apart. Used
// only when stage one of the layout pipeline fails.
type GeminiFallbackExtractor struct {
	client    *genai.Client
	modelName string
}

func NewGeminiFallbackExtractor(ctx context.Context, apiKey, modelName string) (*GeminiFallbackExtractor, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiFallbackExtractor{client: cl, modelName: modelName}, nil
}

func (g *GeminiFallbackExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiFallbackExtractor) ExtractResume(ctx context.Context, rawText string) (*parse_engine.FormattedResume, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("empty resume text")
	}

	m := g.client.GenerativeModel(g.modelName)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fallbackSystemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text("Resume:\n"+rawText))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty model response")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	var out parse_engine.FormattedResume
	if err := json.Unmarshal([]byte(cleanJSON(b.String())), &out); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}
	return &out, nil
}

// cleanJSON strips the markdown code fences models like to wrap JSON in.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

var _ core.FallbackExtractor = (*GeminiFallbackExtractor)(nil)
