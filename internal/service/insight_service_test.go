package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/model"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string]model.InsightResult
	getErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]model.InsightResult{}}
}

func (c *mapCache) Get(_ context.Context, key string) (*model.InsightResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	r, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *mapCache) Set(_ context.Context, key string, result *model.InsightResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *result
	return nil
}

const modelReply = `Here is what I found:

- **Slow onboarding**: Users needed days to set up.
* Pricing: Too expensive for small teams.
1. Support: Replies take a week.
Thanks for asking!
- : missing title
`

func TestInsightGenerate(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "What could be better?")
	f.response(t, form.ID, 2, false, "Setup was slow")
	f.response(t, form.ID, 0, true, "buy watches")

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, "insights-model", mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Setup was slow") && !strings.Contains(p, "buy watches")
	})).Return(modelReply, nil).Once()

	c := newMapCache()
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), gen, "insights-model", c, f.metrics)
	ctx := context.Background()

	got, err := svc.Generate(ctx, "owner-1", form.ID, model.InsightPainPoints)
	require.NoError(t, err)
	assert.Equal(t, []model.InsightPoint{
		{Title: "Slow onboarding", Content: "Users needed days to set up."},
		{Title: "Pricing", Content: "Too expensive for small teams."},
		{Title: "Support", Content: "Replies take a week."},
	}, got.Insights)
	assert.False(t, got.Empty)
	assert.False(t, got.Cached)
	assert.Equal(t, 3, got.Skipped)
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.InsightSkippedLines))

	again, err := svc.Generate(ctx, "owner-1", form.ID, model.InsightPainPoints)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, got.Insights, again.Insights)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InsightCache.WithLabelValues("hit")))
	gen.AssertExpectations(t)
}

func TestInsightGenerateEmptyState(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "Q1")
	f.response(t, form.ID, 5, false, "Love it")

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("I could not find anything notable.", nil)
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), gen, "m", nil, f.metrics)

	got, err := svc.Generate(context.Background(), "owner-1", form.ID, model.InsightPositives)
	require.NoError(t, err)
	assert.True(t, got.Empty)
	assert.NotNil(t, got.Insights)
	assert.Empty(t, got.Insights)
	assert.Equal(t, 1, got.Skipped)
}

func TestInsightGenerateWithoutResponses(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "Q1")
	gen := new(mockGenerator)
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), gen, "m", nil, f.metrics)

	got, err := svc.Generate(context.Background(), "owner-1", form.ID, model.InsightPositives)
	require.NoError(t, err)
	assert.True(t, got.Empty)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestInsightGenerateUpstreamFailure(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "Q1")
	f.response(t, form.ID, 1, false, "Broken")

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", context.DeadlineExceeded).Once()
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), gen, "m", newMapCache(), f.metrics)

	_, err := svc.Generate(context.Background(), "owner-1", form.ID, model.InsightPainPoints)
	appErr := mustAppError(t, err)
	assert.Equal(t, apperrors.UpstreamError, appErr.Type)
	assert.Equal(t, "analysis failed", appErr.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AIRequests.WithLabelValues("insights", "timeout")))
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestInsightGenerateCacheErrorFallsThrough(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "Q1")
	f.response(t, form.ID, 4, false, "Nice")

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("- Speed: Fast", nil)
	c := newMapCache()
	c.getErr = errors.New("redis down")
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), gen, "m", c, f.metrics)

	got, err := svc.Generate(context.Background(), "owner-1", form.ID, model.InsightPositives)
	require.NoError(t, err)
	assert.Len(t, got.Insights, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InsightCache.WithLabelValues("error")))
}

func TestInsightGenerateRejects(t *testing.T) {
	f := newFixture()
	form := f.form(t, "owner-1", "Launch", "Q1")
	svc := NewInsightService(f.store.Forms(), f.store.Responses(), new(mockGenerator), "m", nil, f.metrics)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "owner-1", form.ID, model.InsightKind("summary"))
	assert.Equal(t, apperrors.InvalidInputError, mustAppError(t, err).Type)

	_, err = svc.Generate(ctx, "owner-2", form.ID, model.InsightPositives)
	assert.Equal(t, apperrors.ForbiddenError, mustAppError(t, err).Type)

	_, err = svc.Generate(ctx, "owner-1", "missing", model.InsightPositives)
	assert.Equal(t, apperrors.NotFoundError, mustAppError(t, err).Type)
}
