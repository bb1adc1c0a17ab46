// Package rank scores a query vector against the FAQ corpus.
package rank

import (
	"math"
	"sort"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/pkg/resolve/corpus"

	"github.com/google/uuid"
)

// Candidate is one ranked FAQ entry. Produced fresh per request, never stored.
type Candidate struct {
	Entry *entity.FaqEntry
	Score float64
	Index int // original corpus index, used for deterministic tie-breaks
}

// Rank returns the top k corpus entries by cosine similarity to query,
// descending; ties keep ascending corpus order. An entry represented by
// several vectors (scenario paraphrase variants) appears once, at its best
// score. Degenerate input (empty corpus, missing entries, malformed vectors)
// degrades to an empty or shorter result, never an error.
func Rank(query []float32, snap *corpus.Snapshot, k int) []Candidate {
	if snap == nil || len(query) == 0 || k <= 0 {
		return nil
	}

	candidates := make([]Candidate, 0, len(snap.Vectors))
	for i, vec := range snap.Vectors {
		if i >= len(snap.Entries) || snap.Entries[i] == nil {
			// Vector without a FAQ entry (stale embeddings file). Skip.
			continue
		}
		candidates = append(candidates, Candidate{
			Entry: snap.Entries[i],
			Score: CosineSimilarity(query, vec),
			Index: i,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Index < candidates[b].Index
	})

	seen := make(map[uuid.UUID]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if seen[c.Entry.Id] {
			continue
		}
		seen[c.Entry.Id] = true
		deduped = append(deduped, c)
		if len(deduped) == k {
			break
		}
	}
	return deduped
}

// CosineSimilarity computes cosine similarity between two vectors.
// Length mismatch or zero magnitude yields 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
