package model

import "time"

// InsightKind selects which summary the model is asked for
type InsightKind string

const (
	InsightPainPoints InsightKind = "pain-points"
	InsightPositives  InsightKind = "positives"
)

// Valid reports whether k is a known kind
func (k InsightKind) Valid() bool {
	return k == InsightPainPoints || k == InsightPositives
}

// InsightPoint is one parsed "title: content" bullet
type InsightPoint struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// InsightRequest is the request body for POST /forms/{formId}/insights
type InsightRequest struct {
	Kind InsightKind `json:"kind" validate:"required,oneof=pain-points positives"`
}

// InsightResult is returned by the insights endpoint. Empty is set when the
// model produced no usable bullet.
type InsightResult struct {
	FormID      string         `json:"formId"`
	Kind        InsightKind    `json:"kind"`
	Insights    []InsightPoint `json:"insights"`
	Empty       bool           `json:"empty"`
	Skipped     int            `json:"skipped"`
	Cached      bool           `json:"cached"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
