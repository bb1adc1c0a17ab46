package dto

import "time"

// PublishUnansweredQuestionMessage is the payload published on the
// unanswered-question topic when a query scores below the main threshold.
type PublishUnansweredQuestionMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Question  string    `json:"question"`
}
