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

// ResponseAgent synthesizes the final report from the assessment, the safety
// advice, and the directory's contact set. Risk classification is computed
// here, not taken from the model, and contact numbers are reconciled against
// the directory so the model cannot fabricate one.
type ResponseAgent struct {
	client            ChatClient
	model             string
	retries           int
	criticalThreshold int
}

func NewResponseAgent(client ChatClient, model string, retries, criticalThreshold int) *ResponseAgent {
	if model == "" {
		model = openai.GPT4oMini
	}
	if retries < 0 {
		retries = 0
	}
	if criticalThreshold <= 0 {
		criticalThreshold = DefaultCriticalSeverity
	}
	return &ResponseAgent{client: client, model: model, retries: retries, criticalThreshold: criticalThreshold}
}

// responseWire is the model-facing slice of the report. Risk fields and
// safety measures are filled in deterministically afterwards.
type responseWire struct {
	ImmediateInstructions []string              `json:"immediate_instructions"`
	WhatToSay             string                `json:"what_to_say"`
	EmergencyContacts     []types.ContactRecord `json:"emergency_contacts"`
}

func (a *ResponseAgent) Synthesize(
	ctx context.Context,
	assessment types.ImageAssessment,
	advice types.SafetyAdvice,
	directoryContacts []types.ContactRecord,
) (types.EmergencyReport, error) {
	if err := assessment.Validate(); err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindIncompleteInput, err, "response stage received invalid assessment")
	}
	if err := advice.Validate(); err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindIncompleteInput, err, "response stage received invalid safety advice")
	}
	if len(directoryContacts) == 0 {
		return types.EmergencyReport{}, pipeline.Errorf(pipeline.KindIncompleteInput, "response stage received empty contact set")
	}

	adviceJSON, err := json.Marshal(advice)
	if err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindIncompleteInput, err, "failed to encode safety advice")
	}
	contactsJSON, err := json.MarshalIndent(directoryContacts, "", "  ")
	if err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindIncompleteInput, err, "failed to encode contacts")
	}

	prompt := fmt.Sprintf(responsePromptTemplate,
		assessment.DisasterType,
		assessment.SeverityScore,
		strings.Join(assessment.Hazards, ", "),
		assessment.DetailedAnalysis,
		string(adviceJSON),
		string(contactsJSON),
	)

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: responseSystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:      700,
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
			return types.EmergencyReport{}, err
		}

		report, err := a.assemble(raw, assessment, advice, directoryContacts)
		if err == nil {
			return report, nil
		}
		log.Printf("agents: response synthesis attempt %d failed validation: %v", attempt+1, err)
		lastErr = err
	}
	return types.EmergencyReport{}, lastErr
}

func (a *ResponseAgent) assemble(
	raw string,
	assessment types.ImageAssessment,
	advice types.SafetyAdvice,
	directoryContacts []types.ContactRecord,
) (types.EmergencyReport, error) {
	var wire responseWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "unparsable response plan")
	}
	if len(wire.ImmediateInstructions) == 0 {
		return types.EmergencyReport{}, pipeline.Errorf(pipeline.KindSchemaValidation, "response plan missing immediate_instructions")
	}

	riskLevel, livesInDanger := ClassifyRisk(assessment.SeverityScore, assessment.Hazards, a.criticalThreshold)

	report := types.EmergencyReport{
		DisasterType:          assessment.DisasterType,
		Confidence:            float64(assessment.SeverityScore),
		RiskLevel:             riskLevel,
		LivesInDanger:         livesInDanger,
		ImmediateInstructions: wire.ImmediateInstructions,
		SafetyMeasures:        flattenAdvice(advice),
		EmergencyContacts:     reconcileContacts(wire.EmergencyContacts, directoryContacts),
		WhatToSay:             wire.WhatToSay,
	}

	if err := report.Validate(); err != nil {
		return types.EmergencyReport{}, pipeline.Wrap(pipeline.KindSchemaValidation, err, "non-conforming report")
	}
	return report, nil
}

// flattenAdvice carries the safety stage's lists into the report in a fixed
// order: personal safety first, then prevention, then the checklist.
func flattenAdvice(advice types.SafetyAdvice) []string {
	out := make([]string, 0, len(advice.PersonalSafety)+len(advice.PreventiveActions)+len(advice.RiskMitigationChecklist))
	out = append(out, advice.PersonalSafety...)
	out = append(out, advice.PreventiveActions...)
	out = append(out, advice.RiskMitigationChecklist...)
	return out
}

// reconcileContacts keeps the directory as the single source of truth for
// numbers. Anything the model produced that is not in the directory set is
// dropped; anything it omitted is restored. Directory order wins.
func reconcileContacts(fromModel, directory []types.ContactRecord) []types.ContactRecord {
	allowed := make(map[string]bool, len(directory))
	for _, rec := range directory {
		allowed[rec.PhoneNumber] = true
	}
	for _, rec := range fromModel {
		if !allowed[rec.PhoneNumber] {
			log.Printf("agents: dropping fabricated contact %q (%s)", rec.ServiceName, rec.PhoneNumber)
		}
	}

	out := make([]types.ContactRecord, 0, len(directory))
	out = append(out, directory...)
	return out
}
