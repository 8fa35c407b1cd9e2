package agents

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/HarshwardhanZalte/AIDRA/pipeline"
	"github.com/HarshwardhanZalte/AIDRA/types"
)

// supportedMimeTypes are the image payloads the vision model accepts.
var supportedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ImageAgent turns raw image bytes into a structured hazard assessment. It is
// the only component that ever sees the image.
type ImageAgent struct {
	client  ChatClient
	model   string
	retries int
}

func NewImageAgent(client ChatClient, model string, retries int) *ImageAgent {
	if model == "" {
		model = openai.GPT4oMini
	}
	if retries < 0 {
		retries = 0
	}
	return &ImageAgent{client: client, model: model, retries: retries}
}

// Analyze validates the payload, issues one vision call per attempt, and
// returns a schema-checked assessment. Bad payloads fail before any model
// call is made.
func (a *ImageAgent) Analyze(ctx context.Context, image []byte, mimeType string) (types.ImageAssessment, error) {
	if len(image) == 0 {
		return types.ImageAssessment{}, pipeline.Errorf(pipeline.KindInvalidImage, "empty image payload")
	}
	if !supportedMimeTypes[mimeType] {
		return types.ImageAssessment{}, pipeline.Errorf(pipeline.KindInvalidImage, "unsupported mime type %q", mimeType)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: imageSystemInstruction,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: imagePromptTemplate},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		MaxTokens:      600,
		Temperature:    0.2,
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
			return types.ImageAssessment{}, err
		}

		assessment, err := parseAssessment(raw)
		if err == nil {
			return assessment, nil
		}
		log.Printf("agents: image assessment attempt %d failed validation: %v", attempt+1, err)
		lastErr = err
	}
	return types.ImageAssessment{}, lastErr
}

func parseAssessment(raw string) (types.ImageAssessment, error) {
	var assessment types.ImageAssessment
	if err := json.Unmarshal([]byte(stripFences(raw)), &assessment); err != nil {
		return types.ImageAssessment{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "unparsable image assessment")
	}
	if err := assessment.Validate(); err != nil {
		return types.ImageAssessment{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "non-conforming image assessment")
	}
	return assessment, nil
}
