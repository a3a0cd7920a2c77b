package admin

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

const copywriterSystemPrompt = "You are a marketing copywriter for a flooring and interior finishes retailer in Kenya. You write short, professional product descriptions."

// Copywriter drafts product marketing copy with a generative model, for
// the console's description assist.
type Copywriter struct {
	model      *genai.GenerativeModel
	baseClient *genai.Client
}

// NewCopywriter creates a client against Vertex AI in the given project
// and region.
func NewCopywriter(ctx context.Context, projectID, region string) (*Copywriter, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewCopywriter: projectID and region cannot be empty")
	}
	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel("gemini-1.5-flash")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(copywriterSystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0.7),
	}

	return &Copywriter{model: model, baseClient: baseClient}, nil
}

// ProductDescription returns a two-sentence marketing description for the
// named product.
func (c *Copywriter) ProductDescription(ctx context.Context, productName string) (string, error) {
	prompt := genai.Text(fmt.Sprintf(
		"Write a 2-sentence marketing description for a flooring product named %q. Make it professional and highlight durability for a Kenyan home.",
		productName,
	))
	resp, err := c.model.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate product description: %w", err)
	}
	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func (c *Copywriter) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
