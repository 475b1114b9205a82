package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-1.5-flash"

// Gemini calls the Generative Language API through the official SDK. A client
// is opened per call since each workspace brings its own key.
type Gemini struct {
	model string
	opts  []option.ClientOption
}

func NewGemini(model string, opts ...option.ClientOption) *Gemini {
	model = strings.TrimSpace(model)
	if model == "" {
		model = geminiDefaultModel
	}
	return &Gemini{model: model, opts: opts}
}

func (g *Gemini) APIType() string { return models.APITypeGemini }

func (g *Gemini) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", errors.New("gemini api key is required")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(strings.TrimSpace(apiKey))}, g.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(Temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate that has content.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyReply
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyReply
}

var _ Completer = (*Gemini)(nil)
