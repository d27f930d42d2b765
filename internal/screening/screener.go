package screening

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/spigell/lead-screener/internal/ai"
	"github.com/spigell/lead-screener/internal/policy"
	"github.com/spigell/lead-screener/internal/util"

	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 90 * time.Second
	defaultMaxLogLength   = 200
	defaultConcurrency    = 1
)

// Options tune per-call behavior of a Screener. Zero values select the
// defaults.
type Options struct {
	// RequestTimeout bounds every model call. A provider that never
	// responds resolves to a fallback verdict instead of blocking a batch.
	RequestTimeout time.Duration
	// MaxLogLength limits prompt/response previews in debug logs.
	MaxLogLength int
	// Concurrency is the number of in-flight model calls during a batch.
	Concurrency int
}

// Screener runs the single-profile pipeline: compile prompt, invoke the
// model, extract a verdict. The policy is immutable and safe to share
// across concurrent calls.
type Screener struct {
	generator   ai.Generator
	policy      *policy.Policy
	logger      *zap.Logger
	timeout     time.Duration
	maxLogLen   int
	concurrency int
}

func NewScreener(generator ai.Generator, p *policy.Policy, logger *zap.Logger, opts Options) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &Screener{
		generator:   generator,
		policy:      p,
		logger:      logger,
		timeout:     opts.RequestTimeout,
		maxLogLen:   opts.MaxLogLength,
		concurrency: opts.Concurrency,
	}
}

// Policy returns the policy the screener classifies under.
func (s *Screener) Policy() *policy.Policy {
	return s.policy
}

// Screen classifies one profile. It always returns a verdict: provider
// failures and malformed responses degrade to the fallback rather than
// surfacing as errors.
func (s *Screener) Screen(ctx context.Context, profileText string) *Verdict {
	prompt := CompilePrompt(s.policy, profileText)

	s.logger.Debug("model request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(cctx, prompt)
	if err != nil {
		s.logger.Warn("model call failed", zap.Error(err))
		return Fallback(s.policy, FailureProvider, err)
	}

	s.logger.Debug("model response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	verdict := Extract(s.policy, raw)
	verdict.Raw = raw

	if verdict.Fallback {
		s.logger.Warn("model response rejected", zap.String("rationale", verdict.Rationale))
	}

	return verdict
}
