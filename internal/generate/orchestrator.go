// Package generate coordinates one website-generation request: prompt
// expansion, the provider call, progress simulation, timeout, response
// normalization, image merging, and preview assembly.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"ice_ai_server/config"
	"ice_ai_server/internal/credits"
	"ice_ai_server/internal/llm"
	"ice_ai_server/internal/preview"
	"ice_ai_server/internal/project"
	"ice_ai_server/internal/prompt"
	"ice_ai_server/internal/types"
)

// ErrTimeout marks a generation that exceeded the wall-clock budget.
var ErrTimeout = errors.New("generation timed out")

// Request is one generation attempt.
type Request struct {
	Prompt         string
	Model          string // optional per-call model override
	GenerateImages bool
	UserID         string
}

// Result is the observable outcome of a generation attempt. Steps always
// reach a terminal visual state: all completed, or one error.
type Result struct {
	Project     *types.GeneratedProject
	RawOutput   string
	PreviewHTML string
	Steps       []Step
}

// ImageGenerator is the optional image collaborator.
type ImageGenerator interface {
	Enabled() bool
	GenerateProjectImages(ctx context.Context, sitePrompt string) []types.GeneratedImage
}

// Orchestrator owns the mutable step sequence and current request state for
// the duration of one generation. A new request resets that state and
// supersedes the previous request's progress timers.
type Orchestrator struct {
	cfg    config.Config
	caller llm.Caller
	imgs   ImageGenerator
	gate   credits.Gate

	mu            sync.Mutex
	steps         []Step
	currentPrompt string
	timers        []*time.Timer
}

// NewOrchestrator wires the orchestrator's collaborators. gate and imgs may
// be nil when the deployment has no credit tracking or image generation.
func NewOrchestrator(cfg config.Config, caller llm.Caller, imgs ImageGenerator, gate credits.Gate) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		caller: caller,
		imgs:   imgs,
		gate:   gate,
		steps:  NewSteps(),
	}
}

// Steps returns a snapshot of the current step sequence.
func (o *Orchestrator) Steps() []Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneSteps(o.steps)
}

// CurrentPrompt returns the prompt recorded for the in-flight (or most
// recent) request.
func (o *Orchestrator) CurrentPrompt() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.currentPrompt
}

// Simulated progress checkpoints. Purely cosmetic; pacing matches the one to
// two minutes a local model typically needs.
var progressCheckpoints = []struct {
	after time.Duration
	step  string
}{
	{4 * time.Second, StepHTML},
	{15 * time.Second, StepCSS},
	{30 * time.Second, StepJS},
	{50 * time.Second, StepComponents},
	{70 * time.Second, StepImages},
	{95 * time.Second, StepFinalize},
}

// Generate runs one complete request lifecycle. The returned error is one of
// the distinguished categories in UserMessage; the Result's Steps field is
// valid in both outcomes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	// Consult the credit gate before doing any work. Spend is atomic, so a
	// rapid double-submission cannot spend the same credit twice.
	if o.gate != nil {
		if err := o.gate.Spend(req.UserID, 1, "Website generation"); err != nil {
			return &Result{Steps: o.Steps()}, err
		}
	}

	o.reset(req.Prompt)
	o.updateStep(StepInit, StepInProgress)

	timeout := time.Duration(o.cfg.GenerateTimeoutSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	o.startProgressTimers()
	defer o.stopProgressTimers()

	messages := []types.ChatMessage{
		{Role: types.RoleSystem, Content: prompt.BuildSystemPrompt()},
		{Role: types.RoleUser, Content: prompt.BuildUserPrompt(o.cfg, req.Prompt)},
	}

	// Start image generation in parallel with the text generation, the same
	// way the edge variant overlaps the two calls.
	var imgResults []types.GeneratedImage
	imgDone := make(chan struct{})
	if req.GenerateImages && o.imgs != nil && o.imgs.Enabled() {
		go func() {
			defer close(imgDone)
			imgResults = o.imgs.GenerateProjectImages(callCtx, req.Prompt)
		}()
	} else {
		close(imgDone)
	}

	raw, err := o.caller.Call(callCtx, messages, llm.Options{Model: req.Model})
	o.stopProgressTimers()

	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			err = ErrTimeout
		}
		o.failCurrent()
		log.Printf("Generation failed for prompt %q: %v", truncate(req.Prompt, 80), err)
		return &Result{Steps: o.Steps()}, err
	}
	if raw == "" {
		o.failCurrent()
		return &Result{Steps: o.Steps()}, &llm.ResponseError{Provider: o.caller.ProviderName(), Reason: "empty response body"}
	}

	o.updateStep(StepFinalize, StepInProgress)

	// Normalization never fails; a malformed reply degrades to the fallback
	// single-file project. Logged, never surfaced to the user as failure.
	proj := project.Parse(raw)

	<-imgDone
	if len(imgResults) > 0 {
		proj.Images = append(proj.Images, imgResults...)
		log.Printf("Added %d generated images to project.", len(imgResults))
	}

	o.completeAll()

	return &Result{
		Project:     proj,
		RawOutput:   raw,
		PreviewHTML: preview.Assemble(proj),
		Steps:       o.Steps(),
	}, nil
}

// ConsumeStream handles the alternate transport: an incremental
// chat-completion delta stream. Deltas are accumulated in arrival order and
// the parser runs once on the full text after the stream ends.
func (o *Orchestrator) ConsumeStream(ctx context.Context, body io.Reader) (*Result, error) {
	accumulated, err := llm.ReadStream(ctx, body)
	if err != nil {
		o.failCurrent()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		return &Result{RawOutput: accumulated, Steps: o.Steps()}, err
	}
	if accumulated == "" {
		o.failCurrent()
		return &Result{Steps: o.Steps()}, &llm.ResponseError{Provider: o.caller.ProviderName(), Reason: "empty stream"}
	}

	proj := project.Parse(accumulated)
	o.completeAll()

	return &Result{
		Project:     proj,
		RawOutput:   accumulated,
		PreviewHTML: preview.Assemble(proj),
		Steps:       o.Steps(),
	}, nil
}

// DecodeStructured handles a buffered JSON payload from a structured backend.
// The sanitizer is bypassed; only the non-empty files invariant is enforced.
func DecodeStructured(raw []byte) (*types.GeneratedProject, error) {
	var p types.GeneratedProject
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if len(p.Files) == 0 {
		return nil, errors.New("structured payload has no files")
	}
	return &p, nil
}

func (o *Orchestrator) reset(promptText string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Stale timers from a superseded request must not fire into fresh state.
	for _, t := range o.timers {
		t.Stop()
	}
	o.timers = nil
	o.steps = NewSteps()
	o.currentPrompt = promptText
}

func (o *Orchestrator) startProgressTimers() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, cp := range progressCheckpoints {
		step := cp.step
		o.timers = append(o.timers, time.AfterFunc(cp.after, func() {
			o.updateStep(step, StepInProgress)
		}))
	}
}

func (o *Orchestrator) stopProgressTimers() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, t := range o.timers {
		t.Stop()
	}
	o.timers = nil
}

func (o *Orchestrator) updateStep(id string, status StepStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	advance(o.steps, id, status)
}

func (o *Orchestrator) failCurrent() {
	o.mu.Lock()
	defer o.mu.Unlock()
	failCurrent(o.steps)
}

func (o *Orchestrator) completeAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	completeAll(o.steps)
}

// UserMessage converts a generation error into the message shown to the end
// user, distinguishing the failure categories the UI cares about.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "Generation took too long. Try a smaller prompt or a faster model."
	case errors.Is(err, credits.ErrInsufficientCredits):
		return "Credits required. Please add credits to continue."
	case llm.IsRateLimited(err):
		return "Rate limit exceeded. Please wait a moment and try again."
	case llm.IsPaymentRequired(err):
		return "Credits required. Please add credits to continue."
	default:
		return "Failed to generate website"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
