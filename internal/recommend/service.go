package recommend

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shelfmate/backend/internal/model"
	"shelfmate/backend/internal/store"
)

// Service drives a recommendation request end to end:
// analyze (collection mode) -> build prompt -> remote call -> parse, with any
// recoverable failure after a successful analysis resolving to the local
// fallback generator. Each invocation is independent; nothing is cached
// across requests.
type Service struct {
	store    store.Store
	client   CompletionClient
	prompts  *PromptBuilder
	fallback *FallbackGenerator
	logger   *zap.Logger
}

// NewService wires the pipeline. fallback may be nil for the default
// keyword-classified generator, logger may be nil for no logging.
func NewService(st store.Store, client CompletionClient, fallback *FallbackGenerator, logger *zap.Logger) *Service {
	if fallback == nil {
		fallback = NewFallbackGenerator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    st,
		client:   client,
		prompts:  NewPromptBuilder(),
		fallback: fallback,
		logger:   logger,
	}
}

// GetRecommendations runs the pipeline for one request. An empty collection
// in collection mode returns ErrEmptyCollection — no fallback makes sense
// with zero input data. Context cancellation propagates unchanged so results
// for abandoned requests are discarded. Every other failure downstream of a
// non-empty analysis yields a fallback result with SearchEnabled=false.
func (s *Service) GetRecommendations(ctx context.Context, userID string, req model.RecommendationRequest) (*model.RecommendationResult, error) {
	var (
		analysis CollectionAnalysis
		sample   DetailedSample
		prompt   string
	)

	switch req.Mode {
	case model.ModeCollection:
		records, err := s.store.QueryBooksByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load collection: %w", err)
		}
		analysis, sample, err = Analyze(records)
		if err != nil {
			return nil, err
		}
		prompt = s.prompts.BuildCollectionPrompt(analysis, sample)
	case model.ModeTaste:
		prompt = s.prompts.BuildTastePrompt(req.Taste, req.Filters)
	default:
		return nil, fmt.Errorf("unknown recommendation mode %q", req.Mode)
	}

	raw, err := s.client.Complete(ctx, s.prompts.BuildSystemPrompt(), prompt)
	if err != nil {
		return s.recoverOrFail(ctx, err, req, analysis, sample)
	}

	recs, err := ParseRecommendations(raw)
	if err != nil {
		return s.recoverOrFail(ctx, err, req, analysis, sample)
	}

	return &model.RecommendationResult{
		Recommendations: recs,
		SearchSources:   SynthesizeSources(recs),
		SearchEnabled:   true,
	}, nil
}

// recoverOrFail resolves recoverable failures to a fallback result and lets
// everything else (cancellation included) propagate.
func (s *Service) recoverOrFail(ctx context.Context, cause error, req model.RecommendationRequest, analysis CollectionAnalysis, sample DetailedSample) (*model.RecommendationResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var recoverable *RecoverableError
	if !errors.As(cause, &recoverable) {
		return nil, cause
	}

	s.logger.Warn("recommendation pipeline recovered locally",
		zap.String("mode", req.Mode),
		zap.String("kind", string(recoverable.Kind)),
		zap.String("reason", recoverable.Reason))

	recs := s.fallback.Generate(req, analysis, sample)
	return &model.RecommendationResult{
		Recommendations: recs,
		SearchSources:   SynthesizeSources(recs),
		SearchEnabled:   false,
	}, nil
}
