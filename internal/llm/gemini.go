package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// decisionResponseSchema constrains Gemini generation to the Decision shape.
var decisionResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"response": {
			Type:        genai.TypeString,
			Description: "The professional response to the user's message.",
		},
		"qualified": {
			Type:        genai.TypeBoolean,
			Description: "Whether the user is ready to book a service.",
		},
		"service_type": {
			Type:        genai.TypeString,
			Description: "The type of HVAC service requested.",
			Enum:        []string{ServiceRepair, ServiceInstall, ServiceMaintenance},
		},
		"urgency": {
			Type:        genai.TypeString,
			Description: "The urgency of the service.",
			Enum:        []string{UrgencyLow, UrgencyMedium, UrgencyHigh},
		},
	},
	Required: []string{"response", "qualified"},
}

// GeminiClient implements StructuredClient using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a new Gemini structured client.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// GenerateStructured sends the conversation to Gemini with a JSON response
// schema and decodes the constrained output.
func (c *GeminiClient) GenerateStructured(ctx context.Context, messages []ChatMessage) (Decision, error) {
	if len(messages) == 0 {
		return Decision{}, errors.New("llm: gemini requires at least one message")
	}

	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = decisionResponseSchema

	// System messages become the system instruction; Gemini does not accept
	// them inside the chat history.
	var systemParts []string
	var turns []ChatMessage
	for _, msg := range messages {
		if msg.Role == ChatRoleSystem {
			if text := strings.TrimSpace(msg.Content); text != "" {
				systemParts = append(systemParts, text)
			}
			continue
		}
		turns = append(turns, msg)
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = genai.NewUserContent(genai.Text(strings.Join(systemParts, "\n\n")))
	}
	if len(turns) == 0 {
		return Decision{}, errors.New("llm: gemini requires a non-system message")
	}

	cs := model.StartChat()
	for _, msg := range turns[:len(turns)-1] {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role := "user"
		if msg.Role == ChatRoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return Decision{}, fmt.Errorf("llm: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return Decision{}, errors.New("llm: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return Decision{}, errors.New("llm: gemini returned empty content")
	}

	var raw strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw.WriteString(string(text))
		}
	}

	var decision Decision
	if err := json.Unmarshal([]byte(raw.String()), &decision); err != nil {
		return Decision{}, fmt.Errorf("llm: gemini returned non-conforming output: %w", err)
	}
	if err := decision.Normalize(); err != nil {
		return Decision{}, err
	}
	return decision, nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
