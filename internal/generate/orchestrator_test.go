package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ice_ai_server/config"
	"ice_ai_server/internal/credits"
	"ice_ai_server/internal/llm"
	"ice_ai_server/internal/types"
)

// stubCaller returns a canned reply, an error, or blocks until the context
// is cancelled.
type stubCaller struct {
	reply string
	err   error
	block bool
	calls int
}

func (s *stubCaller) Call(ctx context.Context, _ []types.ChatMessage, _ llm.Options) (string, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func (s *stubCaller) ProviderName() string { return "stub" }

type stubImages struct {
	images []types.GeneratedImage
}

func (s *stubImages) Enabled() bool { return true }
func (s *stubImages) GenerateProjectImages(context.Context, string) []types.GeneratedImage {
	return s.images
}

func testConfig() config.Config {
	return config.Config{GenerateTimeoutSeconds: 5, PromptEnhance: true}
}

const validReply = `{"files":[{"filename":"index.html","language":"html","content":"<h1>Hi</h1>"}]}`

func TestGenerateSuccess(t *testing.T) {
	caller := &stubCaller{reply: validReply}
	o := NewOrchestrator(testConfig(), caller, nil, nil)

	res, err := o.Generate(context.Background(), Request{Prompt: "a coffee shop", UserID: "alice"})
	require.NoError(t, err)

	require.Len(t, res.Project.Files, 1)
	assert.Equal(t, validReply, res.RawOutput)
	assert.Contains(t, res.PreviewHTML, "<h1>Hi</h1>")
	assert.Equal(t, "a coffee shop", o.CurrentPrompt())
	for _, s := range res.Steps {
		assert.Equal(t, StepCompleted, s.Status, "step %s", s.ID)
	}
}

func TestGenerateTimeoutMarksCurrentStepError(t *testing.T) {
	caller := &stubCaller{block: true}
	cfg := testConfig()
	cfg.GenerateTimeoutSeconds = 1
	o := NewOrchestrator(cfg, caller, nil, nil)

	start := time.Now()
	res, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 3*time.Second)

	errored := 0
	for _, s := range res.Steps {
		if s.Status == StepError {
			errored++
		}
		assert.NotEqual(t, StepInProgress, s.Status, "no step may stay in-progress after failure")
	}
	assert.Equal(t, 1, errored)
}

func TestGenerateProviderErrorPreservesCompletedSteps(t *testing.T) {
	caller := &stubCaller{err: &llm.HTTPError{Provider: "stub", Status: 500, Body: "boom"}}
	o := NewOrchestrator(testConfig(), caller, nil, nil)

	res, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})
	require.Error(t, err)

	var httpErr *llm.HTTPError
	assert.ErrorAs(t, err, &httpErr)

	// The init step was in-progress when the call failed.
	assert.Equal(t, StepError, res.Steps[0].Status)
	for _, s := range res.Steps[1:] {
		assert.Equal(t, StepPending, s.Status)
	}
}

func TestGenerateMalformedReplyDegradesToFallback(t *testing.T) {
	caller := &stubCaller{reply: "not json at all"}
	o := NewOrchestrator(testConfig(), caller, nil, nil)

	res, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})
	require.NoError(t, err, "parse fallback is not a hard error")

	require.Len(t, res.Project.Files, 1)
	assert.Equal(t, "not json at all", res.Project.Files[0].Content)
}

func TestGenerateEmptyReplyIsResponseError(t *testing.T) {
	caller := &stubCaller{reply: ""}
	o := NewOrchestrator(testConfig(), caller, nil, nil)

	_, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})

	var respErr *llm.ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestGenerateSpendsExactlyOneCredit(t *testing.T) {
	ledger := credits.NewLedger(2)
	caller := &stubCaller{reply: validReply}
	o := NewOrchestrator(testConfig(), caller, nil, ledger)

	_, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})
	require.NoError(t, err)

	acct, _ := ledger.Balance("alice")
	assert.Equal(t, 1, acct.CreditsRemaining)
}

func TestGenerateRefusedWithoutCredits(t *testing.T) {
	ledger := credits.NewLedger(0)
	caller := &stubCaller{reply: validReply}
	o := NewOrchestrator(testConfig(), caller, nil, ledger)

	_, err := o.Generate(context.Background(), Request{Prompt: "a blog", UserID: "alice"})

	assert.ErrorIs(t, err, credits.ErrInsufficientCredits)
	assert.Equal(t, 0, caller.calls, "no provider call when the gate refuses")
}

func TestGenerateMergesImages(t *testing.T) {
	caller := &stubCaller{reply: validReply}
	imgs := &stubImages{images: []types.GeneratedImage{
		{URL: "data:image/png;base64,xxx", Alt: "Hero Image", Description: "Main hero section image"},
	}}
	o := NewOrchestrator(testConfig(), caller, imgs, nil)

	res, err := o.Generate(context.Background(), Request{Prompt: "a blog", GenerateImages: true, UserID: "alice"})
	require.NoError(t, err)

	require.Len(t, res.Project.Images, 1)
	assert.Equal(t, "Hero Image", res.Project.Images[0].Alt)
}

func TestConsumeStreamAccumulatesDeltas(t *testing.T) {
	o := NewOrchestrator(testConfig(), &stubCaller{}, nil, nil)

	stream := strings.Join([]string{
		`: keep-alive comment`,
		``,
		`data: {"choices":[{"delta":{"content":"{\"files\":[{\"filename\":\"index.html\","}}]}`,
		`data: {"choices":[{"delta":{"content":"\"language\":\"html\",\"content\":\"<p>x</p>\"}]}"}}]}`,
		`data: [DONE]`,
		``,
	}, "\n")

	res, err := o.ConsumeStream(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)

	require.Len(t, res.Project.Files, 1)
	assert.Equal(t, "index.html", res.Project.Files[0].Filename)
	assert.Equal(t, "<p>x</p>", res.Project.Files[0].Content)
}

func TestConsumeStreamEmptyIsResponseError(t *testing.T) {
	o := NewOrchestrator(testConfig(), &stubCaller{}, nil, nil)

	_, err := o.ConsumeStream(context.Background(), strings.NewReader("data: [DONE]\n"))

	var respErr *llm.ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestUserMessageCategories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", ErrTimeout, "Generation took too long. Try a smaller prompt or a faster model."},
		{"rate limit", &llm.HTTPError{Provider: "groq", Status: 429}, "Rate limit exceeded. Please wait a moment and try again."},
		{"payment", &llm.HTTPError{Provider: "groq", Status: 402}, "Credits required. Please add credits to continue."},
		{"credits", credits.ErrInsufficientCredits, "Credits required. Please add credits to continue."},
		{"other", errors.New("boom"), "Failed to generate website"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
