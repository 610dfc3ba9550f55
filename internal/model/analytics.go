package model

// FormResponses pairs a form with the responses loaded for it
type FormResponses struct {
	Form      *Form
	Responses []*Response
}

// FormRatingAverage is one entry of the analytics averageRatings list
type FormRatingAverage struct {
	FormTitle     string  `json:"formTitle"`
	AverageRating float64 `json:"averageRating"`
}

// FormSubmissionCount is one entry of the analytics submissionCounts list
type FormSubmissionCount struct {
	FormTitle       string `json:"formTitle"`
	SubmissionCount int    `json:"submissionCount"`
}

// AnalyticsSummary is returned by GET /analytics
type AnalyticsSummary struct {
	AverageRatings   []FormRatingAverage   `json:"averageRatings"`
	SubmissionCounts []FormSubmissionCount `json:"submissionCounts"`
}

// RatingPoint is the mean rating of one calendar day (UTC)
type RatingPoint struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	AverageRating float64 `json:"averageRating"`
}

// RatingTimeSeries holds a form's daily mean ratings, oldest first
type RatingTimeSeries struct {
	FormTitle      string        `json:"formTitle"`
	AverageRatings []RatingPoint `json:"averageRatings"`
}

// EngagementPoint is the number of responses received on one day
type EngagementPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EngagementSeries holds a form's daily response counts, oldest first
type EngagementSeries struct {
	FormTitle  string            `json:"formTitle"`
	Engagement []EngagementPoint `json:"engagement"`
}

// FormComparison is one row of GET /forms/compare
type FormComparison struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	AvgRating         float64 `json:"avgRating"`
	TotalResponses    int     `json:"totalResponses"`
	SpamPercentage    float64 `json:"spamPercentage"`
	AvgResponseLength float64 `json:"avgResponseLength"`
}

// AggregatedFormMetrics are the derived per-form numbers. Never persisted.
type AggregatedFormMetrics struct {
	FormID                string  `json:"formId"`
	FormTitle             string  `json:"formTitle"`
	AverageRating         float64 `json:"averageRating"`
	SubmissionCount       int     `json:"submissionCount"`
	SpamPercentage        float64 `json:"spamPercentage"`
	AverageResponseLength float64 `json:"averageResponseLength"`
}
