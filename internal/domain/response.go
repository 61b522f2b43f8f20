package domain

import "github.com/google/uuid"

// Response is one free-text NPS survey answer pulled from the warehouse.
// ID is a synthetic per-run identity used to carry rows through concurrent
// classification; it is never persisted. Text is the response exactly as
// stored in the warehouse and is the value written back, so incremental
// loads can match it against the output table. CleanText is the sanitized
// form fed to the classifier and the keyword rules.
type Response struct {
	ID           uuid.UUID
	Text         string
	CleanText    string
	ProviderName string
	ServiceType  string
}

// LabeledRecord is the output row written back for one classified response.
type LabeledRecord struct {
	ResponseText string
	MainTopic    string
	SubTopic     string
	ServiceType  string
	ProviderName string
}

// RunStats summarizes one labeling run for logs and notifications.
type RunStats struct {
	Fetched int
	Blank   int
	Labeled int
	Failed  int
	Chunks  int
}
