package models

// KeywordSuggestion lives for one request only.
type KeywordSuggestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type KeywordResult struct {
	Primary   []KeywordSuggestion `json:"primaryKeywords"`
	Secondary []KeywordSuggestion `json:"secondaryKeywords"`
}
