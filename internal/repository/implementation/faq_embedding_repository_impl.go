package implementation

import (
	"context"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/internal/mapper"
	"faq-assistant-be/internal/model"
	"faq-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaqEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaqEmbeddingMapper
}

func NewFaqEmbeddingRepository(db *gorm.DB) contract.FaqEmbeddingRepository {
	return &FaqEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaqEmbeddingMapper(),
	}
}

func (r *FaqEmbeddingRepositoryImpl) ReplaceAll(ctx context.Context, embeddings []*entity.FaqEmbedding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.FaqEmbedding{}).Error; err != nil {
			return err
		}
		if len(embeddings) == 0 {
			return nil
		}
		models := make([]*model.FaqEmbedding, len(embeddings))
		for i, e := range embeddings {
			models[i] = r.mapper.ToModel(e)
		}
		return tx.Create(models).Error
	})
}

func (r *FaqEmbeddingRepositoryImpl) DeleteByFaqEntryId(ctx context.Context, faqEntryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("faq_entry_id = ?", faqEntryId).Delete(&model.FaqEmbedding{}).Error
}

func (r *FaqEmbeddingRepositoryImpl) FindAll(ctx context.Context) ([]*entity.FaqEmbedding, error) {
	var models []*model.FaqEmbedding
	// Join keeps vector order aligned with FaqRepository.FindAll.
	err := r.db.WithContext(ctx).
		Joins("JOIN faq_entries ON faq_entries.id = faq_embeddings.faq_entry_id").
		Where("faq_entries.deleted_at IS NULL").
		Order("faq_entries.created_at asc, faq_entries.id asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.FaqEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
