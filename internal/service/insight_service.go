package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/cache"
	"kudoswall/internal/insight"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
)

// InsightService summarises a form's non-spam responses with the generative
// model.
type InsightService struct {
	forms     repository.FormRepo
	responses repository.ResponseRepo
	gen       TextGenerator
	model     string
	cache     cache.InsightCache
	metrics   *metrics.Metrics
	log       *zap.SugaredLogger
}

// NewInsightService creates a new insight service. insightCache may be nil.
func NewInsightService(
	forms repository.FormRepo,
	responses repository.ResponseRepo,
	gen TextGenerator,
	model string,
	insightCache cache.InsightCache,
	m *metrics.Metrics,
) *InsightService {
	return &InsightService{
		forms:     forms,
		responses: responses,
		gen:       gen,
		model:     model,
		cache:     insightCache,
		metrics:   m,
		log:       logger.GetLogger(),
	}
}

// Generate returns the insights of kind for an owned form. A model failure is
// a single UpstreamFailure; cache failures only cost a model call.
func (s *InsightService) Generate(ctx context.Context, ownerID, formID string, kind model.InsightKind) (*model.InsightResult, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidInput("invalid insight kind", string(kind))
	}
	if _, err := ownedForm(ctx, s.forms, ownerID, formID); err != nil {
		return nil, err
	}

	responses, err := s.responses.GetByFormID(ctx, formID, false)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(responses) == 0 {
		return &model.InsightResult{
			FormID:      formID,
			Kind:        kind,
			Insights:    []model.InsightPoint{},
			Empty:       true,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	prompt, err := insight.BuildPrompt(kind, insight.Transcripts(responses))
	if err != nil {
		return nil, apperrors.InvalidInput("invalid insight kind", err.Error())
	}

	key := cache.InsightKey(formID, kind, prompt)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	text, err := generate(ctx, s.gen, s.metrics, "insights", s.model, prompt)
	if err != nil {
		s.log.Errorw("Insight generation failed", "formId", formID, "kind", kind, "error", err)
		return nil, apperrors.Upstream(err, "analysis failed")
	}

	points, skipped := insight.ParseBulletResponse(text)
	if skipped > 0 {
		s.metrics.InsightSkippedLines.Add(float64(skipped))
		s.log.Debugw("Skipped unparsable insight lines", "formId", formID, "kind", kind, "skipped", skipped)
	}
	if points == nil {
		points = []model.InsightPoint{}
	}

	result := &model.InsightResult{
		FormID:      formID,
		Kind:        kind,
		Insights:    points,
		Empty:       len(points) == 0,
		Skipped:     skipped,
		GeneratedAt: time.Now().UTC(),
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.log.Warnw("Failed to cache insights", "key", key, "error", err)
		}
	}
	return result, nil
}

func (s *InsightService) fromCache(ctx context.Context, key string) *model.InsightResult {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.InsightCache.WithLabelValues("error").Inc()
		s.log.Warnw("Insight cache read failed", "key", key, "error", err)
		return nil
	case cached == nil:
		s.metrics.InsightCache.WithLabelValues("miss").Inc()
		return nil
	}
	s.metrics.InsightCache.WithLabelValues("hit").Inc()
	cached.Cached = true
	return cached
}
