package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantrio/backend/internal/metrics"
	"github.com/pantrio/backend/internal/prompt"
	"github.com/pantrio/backend/internal/types"
)

// GenerationAttempts is the fixed retry budget per generation request.
// Decode failures are retried immediately with the identical prompt;
// transport failures wait an exponentially growing delay first.
const GenerationAttempts = 3

// Converser is the conversational channel a generation session drives. One
// Send is one model turn; implementations keep their own turn history.
type Converser interface {
	Send(ctx context.Context, text string) (string, error)
}

// GenerationSession owns one conversation with the model and enforces the
// retry-and-decode contract around it. Calls are serialized: one generation
// runs to completion, through all its retries, before the next begins.
type GenerationSession struct {
	mu              sync.Mutex
	newConversation func() Converser
	conv            Converser
	sleep           func(context.Context, time.Duration)
	strictNutrition bool
	attempts        int
}

// GenerationOption configures a GenerationSession.
type GenerationOption func(*GenerationSession)

// WithStrictNutrition makes the decoder reject recipes whose nutrition
// block is incomplete instead of admitting them with absent fields.
func WithStrictNutrition(strict bool) GenerationOption {
	return func(s *GenerationSession) { s.strictNutrition = strict }
}

// WithSleep replaces the backoff sleep. Tests use it to record delays
// instead of waiting them out.
func WithSleep(fn func(context.Context, time.Duration)) GenerationOption {
	return func(s *GenerationSession) { s.sleep = fn }
}

// NewGenerationSession opens a session backed by a fresh conversation from
// factory. The factory is kept so Reset can discard the conversation and
// open another with the same fixed configuration.
func NewGenerationSession(factory func() Converser, opts ...GenerationOption) *GenerationSession {
	s := &GenerationSession{
		newConversation: factory,
		sleep:           sleepContext,
		attempts:        GenerationAttempts,
	}
	for _, o := range opts {
		o(s)
	}
	s.conv = factory()
	return s
}

// Generate renders the prompt for req, sends it over the conversation, and
// decodes the reply, retrying per the fixed budget. On success the decoded
// recipes receive server-assigned IDs and the conversation keeps its
// context for follow-up requests. Terminal failures carry the last raw
// response and the rendered prompt for diagnostic display.
func (s *GenerationSession) Generate(ctx context.Context, req types.GenerationRequest) (*types.GenerationResult, error) {
	if len(req.Ingredients) == 0 {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One rendering; every attempt reuses the identical prompt.
	rendered := prompt.UserPrompt(req)

	for attempt := 1; ; attempt++ {
		callStart := time.Now()
		raw, err := s.conv.Send(ctx, rendered)
		metrics.ModelCallDuration.Observe(time.Since(callStart).Seconds())
		if err != nil {
			if attempt >= s.attempts {
				return nil, &TransportError{Attempts: attempt, Err: err}
			}
			delay := backoffDelay(attempt)
			log.Printf("generation attempt %d/%d: transport error: %v (retrying in %s)",
				attempt, s.attempts, err, delay)
			s.sleep(ctx, delay)
			continue
		}

		recipes, decErr := decodeRecipeCollection(raw, s.strictNutrition)
		if decErr != nil {
			if attempt >= s.attempts {
				return nil, &DecodeError{RawText: raw, Prompt: rendered, Attempts: attempt, Err: decErr}
			}
			log.Printf("generation attempt %d/%d: decode failed: %v", attempt, s.attempts, decErr)
			continue
		}

		for i := range recipes {
			recipes[i].ID = uuid.New().String()
		}
		return &types.GenerationResult{
			Recipes:  recipes,
			RawText:  raw,
			Prompt:   rendered,
			Attempts: attempt,
		}, nil
	}
}

// Reset discards the conversation and opens a fresh one with the same
// system instruction and settings, clearing all conversational context.
// Ratings and history are untouched; calling Reset twice is harmless.
func (s *GenerationSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv = s.newConversation()
}

// backoffDelay doubles per attempt: 1s after the first failure, 2s after
// the second.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
