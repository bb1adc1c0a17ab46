package service

import (
	"context"
	"time"

	"faq-assistant-be/internal/dto"
	"faq-assistant-be/internal/entity"
	"faq-assistant-be/internal/pkg/logger"
	"faq-assistant-be/internal/repository/contract"
	"faq-assistant-be/pkg/embedding"
	"faq-assistant-be/pkg/resolve/corpus"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFaqService interface {
	Create(ctx context.Context, request *dto.CreateFaqRequest) (*dto.FaqResponse, error)
	Update(ctx context.Context, id uuid.UUID, request *dto.UpdateFaqRequest) (*dto.FaqResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.FaqResponse, error)
	List(ctx context.Context) ([]*dto.FaqResponse, error)
	// EncodeCorpus embeds every entry question plus each scenario rule
	// pattern (stripped of wildcards) and rewrites the vector set, then
	// reloads the active snapshot.
	EncodeCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error)
	// ReloadCorpus rebuilds the in-memory snapshot from the stores and swaps
	// it atomically; in-flight requests keep their old snapshot.
	ReloadCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error)
}

type faqService struct {
	faqRepo     contract.FaqRepository
	faqEmbRepo  contract.FaqEmbeddingRepository
	embedder    embedding.EmbeddingProvider
	corpusStore *corpus.Store
	sysLogger   logger.ILogger
}

func NewFaqService(
	faqRepo contract.FaqRepository,
	faqEmbRepo contract.FaqEmbeddingRepository,
	embedder embedding.EmbeddingProvider,
	corpusStore *corpus.Store,
	sysLogger logger.ILogger,
) IFaqService {
	return &faqService{
		faqRepo:     faqRepo,
		faqEmbRepo:  faqEmbRepo,
		embedder:    embedder,
		corpusStore: corpusStore,
		sysLogger:   sysLogger,
	}
}

func (fs *faqService) Create(ctx context.Context, request *dto.CreateFaqRequest) (*dto.FaqResponse, error) {
	if request.Type == entity.FaqTypeScenario && request.Scenario == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "scenario entries require a scenario definition")
	}

	entry := &entity.FaqEntry{
		Id:        uuid.New(),
		Type:      request.Type,
		Question:  request.Question,
		Answer:    request.Answer,
		Scenario:  scenarioFromDTO(request.Scenario),
		CreatedAt: time.Now(),
	}

	if err := fs.faqRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return faqToResponse(entry), nil
}

func (fs *faqService) Update(ctx context.Context, id uuid.UUID, request *dto.UpdateFaqRequest) (*dto.FaqResponse, error) {
	existing, err := fs.faqRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "faq entry not found")
	}
	if request.Type == entity.FaqTypeScenario && request.Scenario == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "scenario entries require a scenario definition")
	}

	existing.Type = request.Type
	existing.Question = request.Question
	existing.Answer = request.Answer
	existing.Scenario = scenarioFromDTO(request.Scenario)

	if err := fs.faqRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return faqToResponse(existing), nil
}

func (fs *faqService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := fs.faqRepo.Delete(ctx, id); err != nil {
		return err
	}
	// Stale vectors for the entry only waste ranking work until the next
	// encode; drop them eagerly anyway.
	if err := fs.faqEmbRepo.DeleteByFaqEntryId(ctx, id); err != nil {
		fs.sysLogger.Warn("faq", "Failed to drop vectors for deleted entry", map[string]interface{}{
			"faq_entry_id": id.String(),
			"error":        err.Error(),
		})
	}
	return nil
}

func (fs *faqService) Show(ctx context.Context, id uuid.UUID) (*dto.FaqResponse, error) {
	entry, err := fs.faqRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "faq entry not found")
	}
	return faqToResponse(entry), nil
}

func (fs *faqService) List(ctx context.Context) ([]*dto.FaqResponse, error) {
	entries, err := fs.faqRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.FaqResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, faqToResponse(e))
	}
	return responses, nil
}

func (fs *faqService) EncodeCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error) {
	entries, err := fs.faqRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var embeddings []*entity.FaqEmbedding
	for _, entry := range entries {
		for _, text := range corpus.Texts(entry) {
			res, err := fs.embedder.Generate(text, "RETRIEVAL_DOCUMENT")
			if err != nil {
				return nil, err
			}
			embeddings = append(embeddings, &entity.FaqEmbedding{
				Id:             uuid.New(),
				FaqEntryId:     entry.Id,
				EmbeddingValue: res.Embedding.Values,
				CreatedAt:      time.Now(),
			})
		}
	}

	if err := fs.faqEmbRepo.ReplaceAll(ctx, embeddings); err != nil {
		return nil, err
	}
	fs.sysLogger.Info("faq", "Corpus encoded", map[string]interface{}{
		"entries": len(entries),
		"vectors": len(embeddings),
	})

	return fs.ReloadCorpus(ctx)
}

func (fs *faqService) ReloadCorpus(ctx context.Context) (*dto.ReloadCorpusResponse, error) {
	entries, err := fs.faqRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	embeddings, err := fs.faqEmbRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := corpus.Build(entries, embeddings)
	fs.corpusStore.Swap(snap)
	fs.sysLogger.Info("faq", "Corpus snapshot reloaded", map[string]interface{}{
		"entries": len(entries),
		"vectors": snap.Len(),
	})

	return &dto.ReloadCorpusResponse{
		Entries: len(entries),
		Vectors: snap.Len(),
	}, nil
}

func scenarioFromDTO(d *dto.ScenarioDTO) *entity.Scenario {
	if d == nil {
		return nil
	}
	sc := &entity.Scenario{
		ExitPhrases: d.ExitPhrases,
		Steps:       make([]entity.ScenarioStep, 0, len(d.Steps)),
	}
	for _, s := range d.Steps {
		step := entity.ScenarioStep{
			Question: s.Question,
			Answers:  make([]entity.ScenarioRule, 0, len(s.Answers)),
		}
		for _, r := range s.Answers {
			step.Answers = append(step.Answers, entity.ScenarioRule{Pattern: r.Pattern, Response: r.Response})
		}
		sc.Steps = append(sc.Steps, step)
	}
	return sc
}

func scenarioToDTO(sc *entity.Scenario) *dto.ScenarioDTO {
	if sc == nil {
		return nil
	}
	d := &dto.ScenarioDTO{
		ExitPhrases: sc.ExitPhrases,
		Steps:       make([]dto.ScenarioStepDTO, 0, len(sc.Steps)),
	}
	for _, s := range sc.Steps {
		step := dto.ScenarioStepDTO{
			Question: s.Question,
			Answers:  make([]dto.ScenarioRuleDTO, 0, len(s.Answers)),
		}
		for _, r := range s.Answers {
			step.Answers = append(step.Answers, dto.ScenarioRuleDTO{Pattern: r.Pattern, Response: r.Response})
		}
		d.Steps = append(d.Steps, step)
	}
	return d
}

func faqToResponse(e *entity.FaqEntry) *dto.FaqResponse {
	return &dto.FaqResponse{
		Id:        e.Id,
		Type:      e.Type,
		Question:  e.Question,
		Answer:    e.Answer,
		Scenario:  scenarioToDTO(e.Scenario),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
