// Package orchestrator wires input validation, the model cache, inference,
// and safety classification into the prompt-to-command pipeline.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ru1vly/Eidos/internal/config"
	"github.com/Ru1vly/Eidos/internal/infer"
	"github.com/Ru1vly/Eidos/internal/modelcache"
	"github.com/Ru1vly/Eidos/internal/output"
	"github.com/Ru1vly/Eidos/internal/safety"
)

// Service runs the prompt-to-command pipeline. The engine is loaded lazily
// on first use and cached; concurrent requests share one load. Safe for
// concurrent use.
type Service struct {
	cache  *modelcache.Cache[*infer.Engine]
	rules  *safety.RuleSet
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a Service. The model is not loaded until the first
// request needs it.
func NewService(cfg *config.Config, rules *safety.RuleSet, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:  modelcache.New[*infer.Engine](),
		rules:  rules,
		cfg:    cfg,
		logger: logger,
	}
}

// GenerateOptions controls a single generation request.
type GenerateOptions struct {
	// Alternatives asks for that many additional candidate commands.
	Alternatives int

	// Explain attaches a plain-language explanation to safe commands.
	Explain bool
}

// GenerateCommand turns a natural-language prompt into a shell command and
// classifies it. A blocked command is a normal result, not an error; errors
// mean the pipeline itself failed (bad input, model load failure, timeout).
func (s *Service) GenerateCommand(ctx context.Context, prompt string, opts GenerateOptions) (*output.CommandResult, error) {
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	if err := safety.CheckInput(prompt, s.cfg.Safety.MaxPromptLength); err != nil {
		logger.Warn("prompt rejected", zap.Error(err))
		return nil, err
	}

	engine, err := s.engine(ctx)
	if err != nil {
		logger.Error("model load failed", zap.Error(err))
		return nil, fmt.Errorf("loading model: %w", err)
	}

	command, err := engine.GenerateCommand(ctx, prompt)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return nil, err
	}

	verdict := s.rules.Classify(command)
	result := buildResult(prompt, command, verdict)
	logger.Info("command generated",
		zap.String("command", command),
		zap.Bool("safe", verdict.Allowed),
		zap.String("category", string(verdict.Category)),
	)

	if opts.Explain && verdict.Allowed {
		if explanation, err := engine.ExplainCommand(command); err == nil {
			result.Explanation = explanation
		} else {
			logger.Debug("no explanation available", zap.String("command", command))
		}
	}

	if opts.Alternatives > 0 {
		alternatives, err := s.alternatives(ctx, engine, logger, prompt, command, opts.Alternatives)
		if err != nil {
			return nil, err
		}
		result.Alternatives = alternatives
	}

	return result, nil
}

// GenerateAlternatives returns up to n distinct safe commands for the
// prompt. Unsafe candidates are dropped, so fewer than n may come back.
func (s *Service) GenerateAlternatives(ctx context.Context, prompt string, n int) ([]string, error) {
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	if err := safety.CheckInput(prompt, s.cfg.Safety.MaxPromptLength); err != nil {
		return nil, err
	}

	engine, err := s.engine(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	return s.alternatives(ctx, engine, logger, prompt, "", n)
}

// Ready reports whether the model has finished loading.
func (s *Service) Ready() bool {
	return s.cache.Ready()
}

// engine returns the cached inference engine, loading it on first use. The
// per-caller wait is bounded by the configured timeout; an expired wait does
// not abort the load for other callers.
func (s *Service) engine(ctx context.Context) (*infer.Engine, error) {
	if secs := s.cfg.Model.LoadWaitTimeoutSecs; secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	modelPath := s.cfg.Model.ModelPath
	tokenizerPath := s.cfg.Model.TokenizerPath
	return s.cache.GetOrLoad(ctx, func() (*infer.Engine, error) {
		return infer.Load(modelPath, tokenizerPath)
	})
}

// alternatives generates candidates and keeps only the safe ones. exclude
// is the primary command already shown to the user, if any.
func (s *Service) alternatives(ctx context.Context, engine *infer.Engine, logger *zap.Logger, prompt, exclude string, n int) ([]string, error) {
	candidates, err := engine.GenerateAlternatives(ctx, prompt, n+1)
	if err != nil {
		return nil, err
	}

	safe := make([]string, 0, n)
	for _, candidate := range candidates {
		if candidate == exclude {
			continue
		}
		verdict := s.rules.Classify(candidate)
		if !verdict.Allowed {
			logger.Warn("dropping unsafe alternative",
				zap.String("command", candidate),
				zap.String("category", string(verdict.Category)),
			)
			continue
		}
		safe = append(safe, candidate)
		if len(safe) == n {
			break
		}
	}
	return safe, nil
}

// buildResult maps a classification verdict onto the result shape.
func buildResult(prompt, command string, verdict safety.Verdict) *output.CommandResult {
	result := &output.CommandResult{
		Prompt:  prompt,
		Command: command,
		IsSafe:  verdict.Allowed,
	}
	if verdict.Allowed {
		result.SafetyLevel = "safe"
	} else {
		result.SafetyLevel = string(verdict.Category)
		result.BlockedPattern = verdict.MatchedPattern
		result.BlockedReason = verdict.Reason
	}
	return result
}
