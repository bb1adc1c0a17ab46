package contract

import (
	"context"

	"faq-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type FaqEmbeddingRepository interface {
	// ReplaceAll swaps the whole vector set atomically; encoding always
	// rewrites the corpus as one unit so entries and vectors cannot drift.
	ReplaceAll(ctx context.Context, embeddings []*entity.FaqEmbedding) error
	DeleteByFaqEntryId(ctx context.Context, faqEntryId uuid.UUID) error
	// FindAll returns vectors in the same stable order as FaqRepository.FindAll.
	FindAll(ctx context.Context) ([]*entity.FaqEmbedding, error)
}
