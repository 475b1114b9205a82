package models

import "time"

// api_type values
const (
	APITypeOpenAI             = "openai"
	APITypeGemini             = "gemini"
	APITypeCompetitorAnalysis = "competitor_analysis"
)

// operation_type values
const (
	OpKeywordGeneration = "keyword_generation"
	OpCompetitorAnalyze = "analyze"
	OpRefund            = "refund"
)

// APIUsage is the write-once audit row for one billable operation.
type APIUsage struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	WorkspaceID     string    `json:"workspace_id"`
	APIType         string    `json:"api_type"`
	UsageAmount     int64     `json:"usage_amount"`
	CreditsConsumed int64     `json:"credits_consumed"`
	OperationType   string    `json:"operation_type"`
	Timestamp       time.Time `json:"timestamp"`
}
