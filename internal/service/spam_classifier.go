package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"kudoswall/internal/insight"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
)

// SpamClassifier asks the model whether a submission is spam. It never
// fails a submission: without a verdict the response is kept as not spam.
type SpamClassifier struct {
	gen     TextGenerator
	model   string
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

func NewSpamClassifier(gen TextGenerator, model string, m *metrics.Metrics) *SpamClassifier {
	return &SpamClassifier{
		gen:     gen,
		model:   model,
		metrics: m,
		log:     logger.GetLogger(),
	}
}

func (c *SpamClassifier) IsSpam(ctx context.Context, resp *model.Response) bool {
	text, err := generate(ctx, c.gen, c.metrics, "spam", c.model, insight.BuildSpamPrompt(resp))
	if err != nil {
		if !errors.Is(err, ErrAIDisabled) {
			c.log.Warnw("Spam check failed, keeping response", "formId", resp.FormID, "error", err)
		}
		return false
	}
	return insight.ParseSpamVerdict(text)
}
