package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/HarshwardhanZalte/AIDRA/pipeline"
	"github.com/HarshwardhanZalte/AIDRA/types"
)

// SafetyAgent turns a hazard assessment into concrete safety advice. The
// signature takes the assessment only; the original image cannot reach this
// stage.
type SafetyAgent struct {
	client  ChatClient
	model   string
	retries int
}

func NewSafetyAgent(client ChatClient, model string, retries int) *SafetyAgent {
	if model == "" {
		model = openai.GPT4oMini
	}
	if retries < 0 {
		retries = 0
	}
	return &SafetyAgent{client: client, model: model, retries: retries}
}

func (a *SafetyAgent) GenerateMeasures(ctx context.Context, assessment types.ImageAssessment) (types.SafetyAdvice, error) {
	if err := assessment.Validate(); err != nil {
		return types.SafetyAdvice{}, pipeline.Wrap(pipeline.KindIncompleteInput, err, "safety stage received invalid assessment")
	}

	prompt := fmt.Sprintf(safetyPromptTemplate,
		assessment.DisasterType,
		assessment.SeverityScore,
		strings.Join(assessment.Hazards, ", "),
		assessment.DetailedAnalysis,
	)

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: safetySystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:      600,
		Temperature:    0.3,
		ResponseFormat: jsonResponseFormat(),
	}

	var lastErr error
	for attempt := 0; attempt <= a.retries; attempt++ {
		raw, err := complete(ctx, a.client, req)
		if err != nil {
			if pipeline.IsKind(err, pipeline.KindSchemaValidation) {
				lastErr = err
				continue
			}
			return types.SafetyAdvice{}, err
		}

		advice, err := parseAdvice(raw)
		if err == nil {
			return advice, nil
		}
		log.Printf("agents: safety advice attempt %d failed validation: %v", attempt+1, err)
		lastErr = err
	}
	return types.SafetyAdvice{}, lastErr
}

func parseAdvice(raw string) (types.SafetyAdvice, error) {
	var advice types.SafetyAdvice
	if err := json.Unmarshal([]byte(stripFences(raw)), &advice); err != nil {
		return types.SafetyAdvice{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "unparsable safety advice")
	}
	if err := advice.Validate(); err != nil {
		return types.SafetyAdvice{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "non-conforming safety advice")
	}
	return advice, nil
}
