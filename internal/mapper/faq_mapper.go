package mapper

import (
	"encoding/json"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(e *model.FaqEntry) (*entity.FaqEntry, error) {
	if e == nil {
		return nil, nil
	}

	var scenario *entity.Scenario
	if len(e.Scenario) > 0 {
		scenario = &entity.Scenario{}
		if err := json.Unmarshal(e.Scenario, scenario); err != nil {
			return nil, err
		}
	}

	return &entity.FaqEntry{
		Id:        e.Id,
		Type:      e.Type,
		Question:  e.Question,
		Answer:    e.Answer,
		Scenario:  scenario,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func (m *FaqMapper) ToModel(e *entity.FaqEntry) (*model.FaqEntry, error) {
	if e == nil {
		return nil, nil
	}

	var scenarioJSON datatypes.JSON
	if e.Scenario != nil {
		raw, err := json.Marshal(e.Scenario)
		if err != nil {
			return nil, err
		}
		scenarioJSON = datatypes.JSON(raw)
	}

	return &model.FaqEntry{
		Id:        e.Id,
		Type:      e.Type,
		Question:  e.Question,
		Answer:    e.Answer,
		Scenario:  scenarioJSON,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

type FaqEmbeddingMapper struct{}

func NewFaqEmbeddingMapper() *FaqEmbeddingMapper {
	return &FaqEmbeddingMapper{}
}

func (m *FaqEmbeddingMapper) ToEntity(e *model.FaqEmbedding) *entity.FaqEmbedding {
	if e == nil {
		return nil
	}
	return &entity.FaqEmbedding{
		Id:             e.Id,
		FaqEntryId:     e.FaqEntryId,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *FaqEmbeddingMapper) ToModel(e *entity.FaqEmbedding) *model.FaqEmbedding {
	if e == nil {
		return nil
	}
	return &model.FaqEmbedding{
		Id:             e.Id,
		FaqEntryId:     e.FaqEntryId,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
