package service

import (
	"context"
	"encoding/json"

	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the unanswered-question topic and appends each
// record to the isolated unanswered log.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	unansweredLog logger.ILogger
	sysLogger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	unansweredLog logger.ILogger,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		unansweredLog: unansweredLog,
		sysLogger:     sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishUnansweredQuestionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.sysLogger.Error("consumer", "Failed to unmarshal unanswered question", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads would retry forever otherwise
		return
	}

	cs.unansweredLog.Info("unanswered", "Question not answered", map[string]interface{}{
		"asked_at": payload.Timestamp.Format("2006-01-02T15:04:05.000Z0700"),
		"score":    payload.Score,
		"question": payload.Question,
	})
	msg.Ack()
}
