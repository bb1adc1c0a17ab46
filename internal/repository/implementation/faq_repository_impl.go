package implementation

import (
	"context"
	"errors"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/internal/mapper"
	"faq-assistant-be/internal/model"
	"faq-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaqRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaqMapper
}

func NewFaqRepository(db *gorm.DB) contract.FaqRepository {
	return &FaqRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaqMapper(),
	}
}

func (r *FaqRepositoryImpl) Create(ctx context.Context, entry *entity.FaqEntry) error {
	m, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.CreatedAt = m.CreatedAt
	return nil
}

func (r *FaqRepositoryImpl) Update(ctx context.Context, entry *entity.FaqEntry) error {
	m, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *FaqRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FaqEntry{}, id).Error
}

func (r *FaqRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.FaqEntry, error) {
	var m model.FaqEntry
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *FaqRepositoryImpl) FindAll(ctx context.Context) ([]*entity.FaqEntry, error) {
	var models []*model.FaqEntry
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.FaqEntry, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
