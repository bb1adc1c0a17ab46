package entity

import (
	"time"

	"github.com/google/uuid"
)

// FaqEmbedding holds the precomputed vector for one FAQ entry question.
// Vectors are produced offline (faqctl encode) and treated as read-only
// by the resolution path.
type FaqEmbedding struct {
	Id             uuid.UUID
	FaqEntryId     uuid.UUID
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
