package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// decisionJSONSchema is the strict response schema sent to OpenAI-compatible
// backends that support json_schema response formats.
var decisionJSONSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "response": {
      "type": "string",
      "description": "The professional response to the user's message."
    },
    "qualified": {
      "type": "boolean",
      "description": "Whether the user is ready to book a service."
    },
    "service_type": {
      "type": ["string", "null"],
      "enum": ["repair", "install", "maintenance", null],
      "description": "The type of HVAC service requested."
    },
    "urgency": {
      "type": ["string", "null"],
      "enum": ["low", "medium", "high", null],
      "description": "The urgency of the service."
    }
  },
  "required": ["response", "qualified", "service_type", "urgency"],
  "additionalProperties": false
}`)

type chatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements StructuredClient against the OpenAI chat API or any
// OpenAI-compatible server (a locally hosted model behind Ollama uses the
// same client with a base URL override, see NewLocalClient).
type OpenAIClient struct {
	client chatCompletionAPI
	model  string

	// Local servers commonly lack json_schema support; they get json_object
	// mode and rely on the persona prompt's format instruction instead.
	useJSONSchema bool
}

// NewOpenAIClient creates a structured client for the hosted OpenAI API.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: openai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		client:        openai.NewClient(apiKey),
		model:         model,
		useJSONSchema: true,
	}, nil
}

// NewLocalClient creates a structured client for a locally hosted
// OpenAI-compatible endpoint such as Ollama.
func NewLocalClient(baseURL, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("llm: local llm base url is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("llm: local llm model is required")
	}
	cfg := openai.DefaultConfig("unused")
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &OpenAIClient{
		client:        openai.NewClientWithConfig(cfg),
		model:         model,
		useJSONSchema: false,
	}, nil
}

// GenerateStructured sends the conversation and decodes the JSON decision.
func (c *OpenAIClient) GenerateStructured(ctx context.Context, messages []ChatMessage) (Decision, error) {
	if len(messages) == 0 {
		return Decision{}, errors.New("llm: at least one message is required")
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case ChatRoleSystem:
			role = openai.ChatMessageRoleSystem
		case ChatRoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: 0,
	}
	if c.useJSONSchema {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "qualification_decision",
				Schema: decisionJSONSchema,
				Strict: true,
			},
		}
	} else {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Decision{}, fmt.Errorf("llm: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Decision{}, errors.New("llm: completion returned no choices")
	}

	var decision Decision
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &decision); err != nil {
		return Decision{}, fmt.Errorf("llm: completion returned non-conforming output: %w", err)
	}
	if err := decision.Normalize(); err != nil {
		return Decision{}, err
	}
	return decision, nil
}
