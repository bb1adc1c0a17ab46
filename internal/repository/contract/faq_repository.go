package contract

import (
	"context"

	"faq-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type FaqRepository interface {
	Create(ctx context.Context, entry *entity.FaqEntry) error
	Update(ctx context.Context, entry *entity.FaqEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.FaqEntry, error)
	// FindAll returns entries in stable insertion order; the corpus snapshot
	// relies on this ordering to align entries with their vectors.
	FindAll(ctx context.Context) ([]*entity.FaqEntry, error)
}
