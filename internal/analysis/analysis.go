// Package analysis asks a Google Gen AI model to describe photos and suggest
// search terms. Every call degrades to a fixed fallback answer instead of
// failing, so callers always get something to show.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/gitkarasune/pix/internal/photo"
)

// Generator is the subset of *genai.Models the analyser uses.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ErrNoAPIKey is returned by NewClient when no Google API key is configured.
var ErrNoAPIKey = errors.New("GOOGLE_API_KEY is required\nGet one at: https://aistudio.google.com/api-keys")

// Result is a model's reading of a photo.
type Result struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Mood        string   `json:"mood"`
	Colors      []string `json:"colors"`
	Suggestions []string `json:"suggestions"`
}

// Analyser wraps a Generator.
type Analyser struct {
	gen    Generator
	model  string
	logger hclog.Logger
}

// New creates an Analyser over gen. A nil logger discards output.
func New(gen Generator, model string, logger hclog.Logger) *Analyser {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyser{gen: gen, model: model, logger: logger}
}

// NewClient creates a Gemini API backed Analyser.
func NewClient(ctx context.Context, apiKey, model string, logger hclog.Logger) (*Analyser, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return New(client.Models, model, logger), nil
}

// Analyze describes p. On any model or parse failure it returns Fallback(p).
func (a *Analyser) Analyze(ctx context.Context, p photo.Photo) Result {
	text, err := a.generate(ctx, analysisPrompt(p), 0.7, 1000)
	if err != nil {
		a.logger.Warn("analysis failed, using fallback", "photo", p.ID, "error", err)
		return Fallback(p)
	}

	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		a.logger.Warn("analysis was not JSON, using fallback", "photo", p.ID, "error", err)
		return Fallback(p)
	}
	return r
}

// Suggest returns search terms related to query. On any failure it returns
// FallbackSuggestions(query).
func (a *Analyser) Suggest(ctx context.Context, query string) []string {
	prompt := fmt.Sprintf("Given the search query %q, suggest 8 related search terms that would help find similar or complementary images. Return only the search terms as a JSON array of strings.", query)
	text, err := a.generate(ctx, prompt, 0.8, 200)
	if err != nil {
		a.logger.Warn("suggestions failed, using fallback", "query", query, "error", err)
		return FallbackSuggestions(query)
	}

	var terms []string
	if err := json.Unmarshal([]byte(text), &terms); err != nil {
		a.logger.Warn("suggestions were not a JSON array, using fallback", "query", query, "error", err)
		return FallbackSuggestions(query)
	}
	return terms
}

func (a *Analyser) generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	a.logger.Debug("calling GenerateContent", "model", a.model)
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		MaxOutputTokens:  maxTokens,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	return stripFence(resp.Text()), nil
}

// stripFence removes a surrounding markdown code fence, which models add
// even when asked for JSON.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func analysisPrompt(p photo.Photo) string {
	description := "No description"
	if d := describe(p); d != "" {
		description = d
	}
	photographer := ""
	if p.User != nil {
		photographer = p.User.Name
	}

	var b strings.Builder
	b.WriteString("Analyze this image and provide insights:\n\n")
	b.WriteString("Image Details:\n")
	fmt.Fprintf(&b, "- Description: %s\n", description)
	fmt.Fprintf(&b, "- Photographer: %s\n", photographer)
	fmt.Fprintf(&b, "- Colors: %s\n", p.Color)
	fmt.Fprintf(&b, "- Dimensions: %dx%d\n\n", p.Width, p.Height)
	b.WriteString("Please provide:\n")
	b.WriteString("1. A detailed description of what you see\n")
	b.WriteString("2. Relevant tags (5-10 keywords)\n")
	b.WriteString("3. The mood/atmosphere of the image\n")
	b.WriteString("4. Dominant colors\n")
	b.WriteString("5. Suggestions for similar images or use cases\n\n")
	b.WriteString("Respond in JSON format with keys: description, tags, mood, colors, suggestions")
	return b.String()
}

func describe(p photo.Photo) string {
	if p.Description != nil && *p.Description != "" {
		return *p.Description
	}
	if p.AltDescription != nil && *p.AltDescription != "" {
		return *p.AltDescription
	}
	return ""
}

// Fallback is the analysis reported when the model cannot be used.
func Fallback(p photo.Photo) Result {
	description := describe(p)
	if description == "" {
		description = "Beautiful image"
	}
	tags := []string{"photography", "art"}
	if p.Tags != nil {
		tags = make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = t.Label()
		}
	}
	return Result{
		Description: description,
		Tags:        tags,
		Mood:        "inspiring",
		Colors:      []string{p.Color},
		Suggestions: []string{"Similar photography", "Related artwork"},
	}
}

// FallbackSuggestions is the suggestion list reported when the model cannot
// be used.
func FallbackSuggestions(query string) []string {
	return []string{query, query + " photography", query + " art", query + " design"}
}
