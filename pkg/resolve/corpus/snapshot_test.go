package corpus

import (
	"testing"

	"faq-assistant-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildPairsVectorsWithEntries(t *testing.T) {
	a := &entity.FaqEntry{Id: uuid.New(), Question: "a"}
	b := &entity.FaqEntry{Id: uuid.New(), Question: "b"}
	embeddings := []*entity.FaqEmbedding{
		{Id: uuid.New(), FaqEntryId: b.Id, EmbeddingValue: []float32{0, 1}},
		{Id: uuid.New(), FaqEntryId: a.Id, EmbeddingValue: []float32{1, 0}},
		{Id: uuid.New(), FaqEntryId: a.Id, EmbeddingValue: []float32{0.5, 0.5}},
	}

	snap := Build([]*entity.FaqEntry{a, b}, embeddings)

	assert.Equal(t, 3, snap.Len())
	assert.Same(t, b, snap.Entries[0])
	assert.Same(t, a, snap.Entries[1])
	assert.Same(t, a, snap.Entries[2])
	assert.Equal(t, []float32{1, 0}, snap.Vectors[1])
}

func TestBuildDropsOrphanVectors(t *testing.T) {
	a := &entity.FaqEntry{Id: uuid.New(), Question: "a"}
	embeddings := []*entity.FaqEmbedding{
		{Id: uuid.New(), FaqEntryId: a.Id, EmbeddingValue: []float32{1, 0}},
		{Id: uuid.New(), FaqEntryId: uuid.New(), EmbeddingValue: []float32{0, 1}},
	}

	snap := Build([]*entity.FaqEntry{a}, embeddings)

	assert.Equal(t, 1, snap.Len())
	assert.Same(t, a, snap.Entries[0])
}

func TestTexts(t *testing.T) {
	tests := []struct {
		name  string
		entry *entity.FaqEntry
		want  []string
	}{
		{
			name:  "simple entry",
			entry: &entity.FaqEntry{Question: "horaires ?"},
			want:  []string{"horaires ?"},
		},
		{
			name: "scenario patterns stripped of wildcards",
			entry: &entity.FaqEntry{
				Question: "problème de connexion",
				Scenario: &entity.Scenario{
					Steps: []entity.ScenarioStep{
						{
							Answers: []entity.ScenarioRule{
								{Pattern: ".*ma connexion est lente.*"},
								{Pattern: ".*pas d'internet.*"},
							},
						},
					},
				},
			},
			want: []string{"problème de connexion", "ma connexion est lente", "pas d'internet"},
		},
		{
			name: "catch-all and empty patterns skipped",
			entry: &entity.FaqEntry{
				Question: "q",
				Scenario: &entity.Scenario{
					Steps: []entity.ScenarioStep{
						{
							Answers: []entity.ScenarioRule{
								{Pattern: ".*"},
								{Pattern: ".*variante utile.*"},
							},
						},
					},
				},
			},
			want: []string{"q", "variante utile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Texts(tt.entry))
		})
	}
}

func TestStoreSwapAndLoad(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, 0, store.Load().Len())

	a := &entity.FaqEntry{Id: uuid.New(), Question: "a"}
	next := &Snapshot{Entries: []*entity.FaqEntry{a}, Vectors: [][]float32{{1}}}
	store.Swap(next)
	assert.Same(t, next, store.Load())

	// A nil swap resets to an empty snapshot, never a nil pointer.
	store.Swap(nil)
	assert.NotNil(t, store.Load())
	assert.Equal(t, 0, store.Load().Len())
}
