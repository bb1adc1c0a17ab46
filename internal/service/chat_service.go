package service

import (
	"context"
	"math"
	"strings"

	"faq-assistant-be/internal/constant"
	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/pkg/logger"
	"faq-assistant-be/pkg/resolve"

	"github.com/google/uuid"
)

type IChatService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.GetHistoryResponse, error)
	DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error
}

type chatService struct {
	resolver  *resolve.Resolver
	sysLogger logger.ILogger
}

func NewChatService(resolver *resolve.Resolver, sysLogger logger.ILogger) IChatService {
	return &chatService{
		resolver:  resolver,
		sysLogger: sysLogger,
	}
}

// Ask resolves one utterance. A blank message short-circuits to the fixed
// prompt without touching session state; an empty session id opens a fresh
// session whose id is echoed back for the client to reuse.
func (cs *chatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	message := strings.TrimSpace(request.Message)
	if message == "" {
		return &dto.AskResponse{
			SessionId:  sessionId,
			Answer:     constant.EmptyQuestionMessage,
			Confidence: 0,
		}, nil
	}

	resolution := cs.resolver.Resolve(sessionId, message)

	cs.sysLogger.Info("chat", "Question resolved", map[string]interface{}{
		"session_id": sessionId,
		"tier":       resolution.Tier,
		"confidence": resolution.Confidence,
	})

	return &dto.AskResponse{
		SessionId:   sessionId,
		Answer:      resolution.Answer,
		Confidence:  roundConfidence(resolution.Confidence),
		Suggestions: resolution.Suggestions,
		Mode:        resolution.Tier,
	}, nil
}

func (cs *chatService) GetHistory(ctx context.Context, sessionId string) (*dto.GetHistoryResponse, error) {
	turns := cs.resolver.History(sessionId)

	response := &dto.GetHistoryResponse{
		SessionId: sessionId,
		Turns:     make([]dto.HistoryTurnDTO, 0, len(turns)),
	}
	for _, t := range turns {
		response.Turns = append(response.Turns, dto.HistoryTurnDTO{User: t.User, Bot: t.Bot})
	}
	return response, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error {
	cs.resolver.EndSession(request.SessionId)
	return nil
}

func roundConfidence(score float64) float64 {
	return math.Round(score*100) / 100
}
