package service

import (
	"context"

	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/pkg/logger"
	"faq-assistant-be/pkg/resolve/tier"

	"github.com/gofiber/fiber/v2"
)

type IOpsService interface {
	GetThresholds(ctx context.Context) *dto.GetThresholdsResponse
	UpdateThresholds(ctx context.Context, request *dto.UpdateThresholdsRequest) (*dto.GetThresholdsResponse, error)
	ListUnanswered(ctx context.Context, limit, offset int) ([]*dto.UnansweredQuestionResponse, error)
}

type opsService struct {
	selector      *tier.Selector
	unansweredLog *logger.ZapLogger
	sysLogger     logger.ILogger
}

func NewOpsService(selector *tier.Selector, unansweredLog *logger.ZapLogger, sysLogger logger.ILogger) IOpsService {
	return &opsService{
		selector:      selector,
		unansweredLog: unansweredLog,
		sysLogger:     sysLogger,
	}
}

func (os *opsService) GetThresholds(ctx context.Context) *dto.GetThresholdsResponse {
	t := os.selector.Thresholds()
	return &dto.GetThresholdsResponse{Exact: t.Exact, Probable: t.Probable}
}

// UpdateThresholds takes effect on the next request; no restart needed.
// Orderings that would corrupt the tier logic are refused with a 400.
func (os *opsService) UpdateThresholds(ctx context.Context, request *dto.UpdateThresholdsRequest) (*dto.GetThresholdsResponse, error) {
	next := tier.Thresholds{Exact: request.Exact, Probable: request.Probable}
	if err := os.selector.SetThresholds(next); err != nil {
		os.sysLogger.Warn("ops", "Rejected threshold update", map[string]interface{}{
			"exact":    request.Exact,
			"probable": request.Probable,
			"error":    err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	os.sysLogger.Info("ops", "Thresholds updated", map[string]interface{}{
		"exact":    request.Exact,
		"probable": request.Probable,
	})
	return os.GetThresholds(ctx), nil
}

func (os *opsService) ListUnanswered(ctx context.Context, limit, offset int) ([]*dto.UnansweredQuestionResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := os.unansweredLog.ReadEntries(limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UnansweredQuestionResponse, 0, len(entries))
	for _, e := range entries {
		row := &dto.UnansweredQuestionResponse{Timestamp: e.Timestamp}
		if score, ok := e.Details["score"].(float64); ok {
			row.Score = score
		}
		if question, ok := e.Details["question"].(string); ok {
			row.Question = question
		}
		responses = append(responses, row)
	}
	return responses, nil
}
