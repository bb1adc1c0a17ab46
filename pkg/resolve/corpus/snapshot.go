// Package corpus holds the immutable FAQ snapshot consulted during ranking.
// A reload swaps the whole snapshot atomically so in-flight requests never
// observe a half-updated corpus.
package corpus

import (
	"strings"
	"sync/atomic"

	"faq-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// Snapshot pairs FAQ entries with their precomputed question vectors.
// Vectors[i] belongs to Entries[i]; the two slices may diverge in length if
// the embeddings file is stale, the ranker tolerates that.
type Snapshot struct {
	Entries []*entity.FaqEntry
	Vectors [][]float32
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Build pairs each stored vector with its FAQ entry. Vectors whose entry no
// longer exists are dropped; an entry may contribute several vectors (one per
// scenario paraphrase variant).
func Build(entries []*entity.FaqEntry, embeddings []*entity.FaqEmbedding) *Snapshot {
	byId := make(map[uuid.UUID]*entity.FaqEntry, len(entries))
	for _, e := range entries {
		byId[e.Id] = e
	}

	snap := &Snapshot{}
	for _, emb := range embeddings {
		entry, ok := byId[emb.FaqEntryId]
		if !ok {
			continue
		}
		snap.Entries = append(snap.Entries, entry)
		snap.Vectors = append(snap.Vectors, emb.EmbeddingValue)
	}
	return snap
}

// Texts returns the texts to embed for one entry: its representative
// question, plus each scenario rule pattern with wildcards stripped so
// paraphrase variants are searchable too.
func Texts(entry *entity.FaqEntry) []string {
	texts := []string{entry.Question}
	if entry.Scenario == nil {
		return texts
	}
	for _, step := range entry.Scenario.Steps {
		for _, rule := range step.Answers {
			clean := strings.TrimSpace(strings.ReplaceAll(rule.Pattern, ".*", ""))
			if clean != "" && clean != "." {
				texts = append(texts, clean)
			}
		}
	}
	return texts
}

// Store publishes the active snapshot. Readers take a reference once at the
// start of ranking and use it for the whole request.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial == nil {
		initial = &Snapshot{}
	}
	s.current.Store(initial)
	return s
}

func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

func (s *Store) Swap(next *Snapshot) {
	if next == nil {
		next = &Snapshot{}
	}
	s.current.Store(next)
}
