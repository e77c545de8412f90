package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type stubCompletionAPI struct {
	request  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (s *stubCompletionAPI) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.request = request
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return s.response, nil
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOpenAIGenerateStructured(t *testing.T) {
	api := &stubCompletionAPI{response: completionWith(
		`{"response": "Got it, scheduling a repair.", "qualified": true, "service_type": "repair", "urgency": "high"}`,
	)}
	client := &OpenAIClient{client: api, model: "gpt-4o-mini", useJSONSchema: true}

	decision, err := client.GenerateStructured(context.Background(), []ChatMessage{
		{Role: ChatRoleSystem, Content: "persona"},
		{Role: ChatRoleUser, Content: "my furnace is dead, come today"},
	})
	if err != nil {
		t.Fatalf("GenerateStructured returned error: %v", err)
	}

	if !decision.Qualified || decision.ServiceType != ServiceRepair || decision.Urgency != UrgencyHigh {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	if api.request.Model != "gpt-4o-mini" {
		t.Fatalf("request model = %q", api.request.Model)
	}
	if len(api.request.Messages) != 2 || api.request.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("unexpected request messages: %+v", api.request.Messages)
	}
	rf := api.request.ResponseFormat
	if rf == nil || rf.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Fatalf("unexpected response format: %+v", rf)
	}
	if rf.JSONSchema == nil || !rf.JSONSchema.Strict {
		t.Fatal("expected a strict json schema")
	}
}

func TestOpenAIJSONObjectMode(t *testing.T) {
	api := &stubCompletionAPI{response: completionWith(
		`{"response": "How can I help?", "qualified": false}`,
	)}
	client := &OpenAIClient{client: api, model: "llama3.1", useJSONSchema: false}

	decision, err := client.GenerateStructured(context.Background(), []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("GenerateStructured returned error: %v", err)
	}
	if decision.Qualified {
		t.Fatal("greeting should not qualify")
	}

	rf := api.request.ResponseFormat
	if rf == nil || rf.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Fatalf("unexpected response format: %+v", rf)
	}
}

func TestOpenAIRejectsMalformedOutput(t *testing.T) {
	api := &stubCompletionAPI{response: completionWith(`sure, happy to help!`)}
	client := &OpenAIClient{client: api, model: "gpt-4o-mini", useJSONSchema: true}

	_, err := client.GenerateStructured(context.Background(), []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
	})
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestOpenAIPropagatesAPIError(t *testing.T) {
	api := &stubCompletionAPI{err: errors.New("rate limited")}
	client := &OpenAIClient{client: api, model: "gpt-4o-mini", useJSONSchema: true}

	_, err := client.GenerateStructured(context.Background(), []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
	})
	if !errors.Is(err, api.err) {
		t.Fatalf("expected wrapped API error, got: %v", err)
	}
}
