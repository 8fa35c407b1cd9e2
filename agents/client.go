// Package agents holds the three model-backed analysis stages. Each agent
// issues chat completions against the OpenAI API, demands JSON-only output,
// and validates it against the stage's schema before handing it on.
package agents

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/HarshwardhanZalte/AIDRA/pipeline"
)

// ChatClient is the slice of *openai.Client the agents use. Tests substitute
// a stub; production wires the real client.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// complete issues one chat completion and returns the first choice's content.
// Transport and service failures come back tagged model_unavailable.
func complete(ctx context.Context, client ChatClient, req openai.ChatCompletionRequest) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", pipeline.Wrap(pipeline.KindModelUnavailable, err, "chat completion failed")
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", pipeline.Errorf(pipeline.KindSchemaValidation, "model returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the JSON-only instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func jsonResponseFormat() *openai.ChatCompletionResponseFormat {
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
}
