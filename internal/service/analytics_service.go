package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"kudoswall/internal/analytics"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/logger"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
)

// AnalyticsService loads an owner's forms and responses and hands them to the
// aggregation functions.
type AnalyticsService struct {
	forms       repository.FormRepo
	responses   repository.ResponseRepo
	concurrency int
	log         *zap.SugaredLogger
}

// NewAnalyticsService creates a new analytics service. concurrency bounds the
// per-form response loads that run in parallel.
func NewAnalyticsService(forms repository.FormRepo, responses repository.ResponseRepo, concurrency int) *AnalyticsService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AnalyticsService{
		forms:       forms,
		responses:   responses,
		concurrency: concurrency,
		log:         logger.GetLogger(),
	}
}

// loadOwned fetches every form of ownerID, then each form's responses. The
// result keeps the forms' order; any failed load fails the whole call.
func (s *AnalyticsService) loadOwned(ctx context.Context, ownerID string, includeSpam bool) ([]model.FormResponses, error) {
	forms, err := s.forms.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	sets := make([]model.FormResponses, len(forms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, form := range forms {
		sets[i].Form = form
		g.Go(func() error {
			responses, err := s.responses.GetByFormID(gctx, form.ID, includeSpam)
			if err != nil {
				return err
			}
			sets[i].Responses = responses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Errorw("Failed to load responses for analytics", "ownerId", ownerID, "error", err)
		return nil, apperrors.Internal(err)
	}
	return sets, nil
}

// Summary returns the mean rating and submission count of each form. Spam is
// excluded.
func (s *AnalyticsService) Summary(ctx context.Context, ownerID string) (*model.AnalyticsSummary, error) {
	sets, err := s.loadOwned(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	averages, counts := analytics.AverageRatingsAndCounts(sets)
	return &model.AnalyticsSummary{AverageRatings: averages, SubmissionCounts: counts}, nil
}

func (s *AnalyticsService) RatingsOverTime(ctx context.Context, ownerID string) ([]model.RatingTimeSeries, error) {
	sets, err := s.loadOwned(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	return analytics.RatingsOverTime(sets), nil
}

func (s *AnalyticsService) EngagementOverTime(ctx context.Context, ownerID string) ([]model.EngagementSeries, error) {
	sets, err := s.loadOwned(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	return analytics.EngagementOverTime(sets), nil
}

// Compare includes spam so the spam percentage is meaningful.
func (s *AnalyticsService) Compare(ctx context.Context, ownerID string) ([]model.FormComparison, error) {
	sets, err := s.loadOwned(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	return analytics.Compare(sets), nil
}

// FormMetrics returns the derived numbers of one owned form, spam included.
func (s *AnalyticsService) FormMetrics(ctx context.Context, ownerID, formID string) (*model.AggregatedFormMetrics, error) {
	form, err := ownedForm(ctx, s.forms, ownerID, formID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responses.GetByFormID(ctx, formID, true)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	metrics := analytics.Metrics(model.FormResponses{Form: form, Responses: responses})
	return &metrics, nil
}
