package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Analyze uploads the WAV to Gemini and returns the raw response text.
// Size and format limits are the service's concern; the caller has already
// verified the file exists and is non-empty.
func (c *implClient) Analyze(ctx context.Context, wavPath string) (string, error) {
	if _, err := os.Stat(wavPath); err != nil {
		return "", fmt.Errorf("audio file unavailable for analysis: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create Gemini client: %w", err)
	}

	file, err := client.Files.UploadFromPath(ctx, wavPath, &genai.UploadFileConfig{
		MIMEType: "audio/wav",
	})
	if err != nil {
		return "", fmt.Errorf("upload audio to Gemini: %w", err)
	}

	c.logger.Info(ctx, "Sending audio to Gemini (%s) for analysis", c.model)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(analysisPrompt),
			genai.NewPartFromURI(file.URI, file.MIMEType),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := collectText(result)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	c.logger.Info(ctx, "Gemini analysis complete (%d bytes)", len(text))
	return strings.TrimSpace(text), nil
}

func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}
