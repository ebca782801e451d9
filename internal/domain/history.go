package domain

import "time"

// ChainRecord captures one completed chain run for the history store.
type ChainRecord struct {
	RunID          string    `json:"run_id"`
	Timestamp      time.Time `json:"timestamp"`
	RawText        string    `json:"raw_text"`
	Commands       string    `json:"commands"`
	Attempted      int       `json:"attempted"`
	HaltedEarly    bool      `json:"halted_early"`
	OverallSuccess bool      `json:"overall_success"`
	DurationMS     int64     `json:"duration_ms"`
}
