// Package orchestrator sequences the analysis pipeline: image understanding,
// safety advice, contact lookup, response synthesis, session write. Stages
// run strictly in order; the first failure aborts the rest of the request.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/HarshwardhanZalte/AIDRA/contacts"
	"github.com/HarshwardhanZalte/AIDRA/pipeline"
	"github.com/HarshwardhanZalte/AIDRA/sessions"
	"github.com/HarshwardhanZalte/AIDRA/types"
)

// State names the position of one request in the pipeline.
type State string

const (
	StateIdle              State = "idle"
	StateImageAnalysis     State = "image_analysis"
	StateSafetyAnalysis    State = "safety_analysis"
	StateContactLookup     State = "contact_lookup"
	StateResponseSynthesis State = "response_synthesis"
	StateComplete          State = "complete"
	StateFailed            State = "failed"
)

// ImageAnalyzer is the first stage: raw image in, assessment out.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (types.ImageAssessment, error)
}

// SafetyAdvisor is the second stage. It takes the assessment only; there is
// no way to pass it the image.
type SafetyAdvisor interface {
	GenerateMeasures(ctx context.Context, assessment types.ImageAssessment) (types.SafetyAdvice, error)
}

// ReportSynthesizer is the final model stage.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, assessment types.ImageAssessment, advice types.SafetyAdvice, contacts []types.ContactRecord) (types.EmergencyReport, error)
}

// Request is one analyze invocation. An empty SessionID marks the request
// sessionless: the pipeline runs but nothing is written to the store.
type Request struct {
	Image     []byte
	MimeType  string
	Country   string
	SessionID string
}

// Orchestrator wires the stages together. Independent requests may run
// concurrently up to the semaphore's size; within a request the stage order
// is fixed and total.
type Orchestrator struct {
	imageAgent    ImageAnalyzer
	safetyAgent   SafetyAdvisor
	responseAgent ReportSynthesizer
	directory     contacts.Directory
	store         sessions.Store

	sem chan struct{}
	now func() time.Time
}

func New(
	imageAgent ImageAnalyzer,
	safetyAgent SafetyAdvisor,
	responseAgent ReportSynthesizer,
	directory contacts.Directory,
	store sessions.Store,
	maxConcurrent int,
) *Orchestrator {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Orchestrator{
		imageAgent:    imageAgent,
		safetyAgent:   safetyAgent,
		responseAgent: responseAgent,
		directory:     directory,
		store:         store,
		sem:           make(chan struct{}, maxConcurrent),
		now:           time.Now,
	}
}

// run tracks one request through the state machine, emitting one log event
// per transition.
type run struct {
	state     State
	sessionID string
	started   time.Time
}

func (r *run) enter(next State) {
	r.state = next
	log.Printf("orchestrator: stage=%s status=entered session=%q", next, r.sessionID)
}

func (r *run) succeed() {
	log.Printf("orchestrator: stage=%s status=ok session=%q", r.state, r.sessionID)
}

func (r *run) fail(err error) {
	log.Printf("orchestrator: stage=%s status=failed kind=%s session=%q err=%v",
		r.state, pipeline.KindOf(err), r.sessionID, err)
	r.state = StateFailed
}

// Analyze executes the full pipeline for one request. Every stage's output
// is validated before the next stage runs. On any failure no later stage is
// invoked and the session store is untouched. On success exactly one session
// write happens, after synthesis and before the report is returned.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (types.EmergencyReport, error) {
	select {
	case o.sem <- struct{}{}:
		defer func() { <-o.sem }()
	case <-ctx.Done():
		return types.EmergencyReport{}, ctx.Err()
	}

	r := &run{state: StateIdle, sessionID: req.SessionID, started: o.now()}

	r.enter(StateImageAnalysis)
	assessment, err := o.imageAgent.Analyze(ctx, req.Image, req.MimeType)
	if err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	if err := assessment.Validate(); err != nil {
		err = pipeline.Wrap(pipeline.KindSchemaValidation, err, "image stage handoff rejected")
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	r.succeed()

	if err := ctx.Err(); err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}

	r.enter(StateSafetyAnalysis)
	advice, err := o.safetyAgent.GenerateMeasures(ctx, assessment)
	if err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	if err := advice.Validate(); err != nil {
		err = pipeline.Wrap(pipeline.KindSchemaValidation, err, "safety stage handoff rejected")
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	r.succeed()

	if err := ctx.Err(); err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}

	r.enter(StateContactLookup)
	contactSet := o.directory.Lookup(req.Country, assessment.DisasterType)
	if len(contactSet) == 0 {
		err := pipeline.Errorf(pipeline.KindIncompleteInput, "directory returned no contacts for %q/%q", req.Country, assessment.DisasterType)
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	r.succeed()

	r.enter(StateResponseSynthesis)
	report, err := o.responseAgent.Synthesize(ctx, assessment, advice, contactSet)
	if err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	if err := report.Validate(); err != nil {
		err = pipeline.Wrap(pipeline.KindSchemaValidation, err, "response stage handoff rejected")
		r.fail(err)
		return types.EmergencyReport{}, err
	}
	r.succeed()

	// A cancelled caller gets no session write; the completed work is
	// discarded rather than cached.
	if err := ctx.Err(); err != nil {
		r.fail(err)
		return types.EmergencyReport{}, err
	}

	if req.SessionID != "" {
		o.store.Put(req.SessionID, types.SessionRecord{
			SessionID:        req.SessionID,
			LastDisasterType: report.DisasterType,
			LastRiskLevel:    report.RiskLevel,
			LastUpdated:      o.now(),
		})
	}

	r.state = StateComplete
	log.Printf("orchestrator: stage=%s session=%q latency=%s", r.state, r.sessionID, o.now().Sub(r.started))
	return report, nil
}
