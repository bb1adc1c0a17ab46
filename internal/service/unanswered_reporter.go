package service

import (
	"context"
	"encoding/json"
	"time"

	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/pkg/logger"
)

// unansweredReporter bridges the resolver's fire-and-forget reporting hook to
// the pub/sub topic. Publish failures are logged and swallowed; the answer
// path never waits on or fails with the logging pipeline.
type unansweredReporter struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewUnansweredReporter(publisher IPublisherService, sysLogger logger.ILogger) *unansweredReporter {
	return &unansweredReporter{
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (r *unansweredReporter) Report(timestamp time.Time, score float64, question string) {
	payload := dto.PublishUnansweredQuestionMessage{
		Timestamp: timestamp,
		Score:     score,
		Question:  question,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("unanswered-reporter", "Failed to marshal payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := r.publisher.Publish(context.Background(), payloadJson); err != nil {
		r.logger.Error("unanswered-reporter", "Failed to publish unanswered question", map[string]interface{}{"error": err.Error()})
	}
}
