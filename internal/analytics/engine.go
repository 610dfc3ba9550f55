// Package analytics turns forms and their responses into dashboard metrics.
// Every function is pure: the same input always yields the same output.
//
// One mean rule is used everywhere: the sum of ratings divided by
// max(count, 1) over the responses handed in. Unrated responses (rating 0)
// add nothing to the sum but still count toward the denominator.
package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"kudoswall/internal/model"
)

// DateLayout is the calendar-day key used by the time series.
const DateLayout = "2006-01-02"

// DateKey returns the UTC calendar day of t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func meanRating(responses []*model.Response) float64 {
	sum := 0
	for _, r := range responses {
		sum += r.Rating
	}
	return float64(sum) / float64(max(len(responses), 1))
}

// AverageRatingsAndCounts returns one average and one count per form, in
// input order.
func AverageRatingsAndCounts(sets []model.FormResponses) ([]model.FormRatingAverage, []model.FormSubmissionCount) {
	averages := make([]model.FormRatingAverage, 0, len(sets))
	counts := make([]model.FormSubmissionCount, 0, len(sets))
	for _, set := range sets {
		averages = append(averages, model.FormRatingAverage{
			FormTitle:     set.Form.Title,
			AverageRating: meanRating(set.Responses),
		})
		counts = append(counts, model.FormSubmissionCount{
			FormTitle:       set.Form.Title,
			SubmissionCount: len(set.Responses),
		})
	}
	return averages, counts
}

// SpamPercentage is the unrounded share of spam responses, in [0, 100].
func SpamPercentage(responses []*model.Response) float64 {
	spam := 0
	for _, r := range responses {
		if r.Spam {
			spam++
		}
	}
	return float64(spam) / float64(max(len(responses), 1)) * 100
}

// AverageResponseLength sums the character length of each response's answers
// joined by a single space and divides by the total number of responses,
// including those without answers.
func AverageResponseLength(responses []*model.Response) float64 {
	total := 0
	for _, r := range responses {
		if len(r.Answers) == 0 {
			continue
		}
		total += utf8.RuneCountInString(strings.Join(r.Answers, " "))
	}
	return float64(total) / float64(max(len(responses), 1))
}

type dayBucket struct {
	sum   int
	count int
}

func bucketByDay(responses []*model.Response) ([]string, map[string]*dayBucket) {
	buckets := make(map[string]*dayBucket)
	for _, r := range responses {
		key := DateKey(r.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{}
			buckets[key] = b
		}
		b.sum += r.Rating
		b.count++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	// YYYY-MM-DD sorts lexically in date order
	sort.Strings(days)
	return days, buckets
}

// RatingsOverTime returns, per form, the mean rating of each day that has at
// least one response, oldest day first.
func RatingsOverTime(sets []model.FormResponses) []model.RatingTimeSeries {
	series := make([]model.RatingTimeSeries, 0, len(sets))
	for _, set := range sets {
		days, buckets := bucketByDay(set.Responses)
		points := make([]model.RatingPoint, 0, len(days))
		for _, day := range days {
			b := buckets[day]
			points = append(points, model.RatingPoint{
				Date:          day,
				AverageRating: float64(b.sum) / float64(b.count),
			})
		}
		series = append(series, model.RatingTimeSeries{
			FormTitle:      set.Form.Title,
			AverageRatings: points,
		})
	}
	return series
}

// EngagementOverTime returns, per form, the number of responses of each day,
// oldest day first.
func EngagementOverTime(sets []model.FormResponses) []model.EngagementSeries {
	series := make([]model.EngagementSeries, 0, len(sets))
	for _, set := range sets {
		days, buckets := bucketByDay(set.Responses)
		points := make([]model.EngagementPoint, 0, len(days))
		for _, day := range days {
			points = append(points, model.EngagementPoint{Date: day, Count: buckets[day].count})
		}
		series = append(series, model.EngagementSeries{
			FormTitle:  set.Form.Title,
			Engagement: points,
		})
	}
	return series
}

// Metrics computes the aggregated numbers of a single form.
func Metrics(set model.FormResponses) model.AggregatedFormMetrics {
	return model.AggregatedFormMetrics{
		FormID:                set.Form.ID,
		FormTitle:             set.Form.Title,
		AverageRating:         meanRating(set.Responses),
		SubmissionCount:       len(set.Responses),
		SpamPercentage:        SpamPercentage(set.Responses),
		AverageResponseLength: AverageResponseLength(set.Responses),
	}
}

// Compare returns one comparison row per form, in input order.
func Compare(sets []model.FormResponses) []model.FormComparison {
	rows := make([]model.FormComparison, 0, len(sets))
	for _, set := range sets {
		m := Metrics(set)
		rows = append(rows, model.FormComparison{
			ID:                m.FormID,
			Name:              m.FormTitle,
			AvgRating:         m.AverageRating,
			TotalResponses:    m.SubmissionCount,
			SpamPercentage:    m.SpamPercentage,
			AvgResponseLength: m.AverageResponseLength,
		})
	}
	return rows
}
