package rank

import (
	"math"
	"testing"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/pkg/resolve/corpus"

	"github.com/google/uuid"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{0.6, 0.8},
			b:    []float32{0.6, 0.8},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "length mismatch",
			a:    []float32{1, 0, 0},
			b:    []float32{1, 0},
			want: 0.0,
		},
		{
			name: "zero magnitude",
			a:    []float32{0, 0},
			b:    []float32{1, 1},
			want: 0.0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func entryWithQuestion(q string) *entity.FaqEntry {
	return &entity.FaqEntry{Id: uuid.New(), Type: entity.FaqTypeSimple, Question: q}
}

func TestRankOrdersByScore(t *testing.T) {
	far := entryWithQuestion("far")
	near := entryWithQuestion("near")
	exact := entryWithQuestion("exact")
	snap := &corpus.Snapshot{
		Entries: []*entity.FaqEntry{far, near, exact},
		Vectors: [][]float32{{0, 1}, {0.6, 0.8}, {1, 0}},
	}

	got := Rank([]float32{1, 0}, snap, 3)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Entry != exact {
		t.Errorf("top entry = %q, want %q", got[0].Entry.Question, exact.Question)
	}
	if got[0].Score != 1.0 {
		t.Errorf("top score = %v, want 1.0", got[0].Score)
	}
	if got[1].Entry != near || got[2].Entry != far {
		t.Errorf("order = [%q %q], want [near far]", got[1].Entry.Question, got[2].Entry.Question)
	}
}

func TestRankTieBreaksByCorpusOrder(t *testing.T) {
	first := entryWithQuestion("first")
	second := entryWithQuestion("second")
	snap := &corpus.Snapshot{
		Entries: []*entity.FaqEntry{first, second},
		Vectors: [][]float32{{1, 0}, {1, 0}},
	}

	got := Rank([]float32{1, 0}, snap, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Entry != first {
		t.Errorf("tie winner = %q, want %q", got[0].Entry.Question, first.Question)
	}
}

func TestRankTruncatesToK(t *testing.T) {
	snap := &corpus.Snapshot{}
	for i := 0; i < 5; i++ {
		snap.Entries = append(snap.Entries, entryWithQuestion("q"))
		snap.Vectors = append(snap.Vectors, []float32{1, float32(i)})
	}

	if got := Rank([]float32{1, 0}, snap, 3); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if got := Rank([]float32{1, 0}, snap, 10); len(got) != 5 {
		t.Errorf("k beyond corpus: len = %d, want 5", len(got))
	}
}

func TestRankDedupesMultiVectorEntries(t *testing.T) {
	// Scenario entries carry one vector per paraphrase variant. The entry
	// must surface once, at its best score.
	multi := entryWithQuestion("multi")
	other := entryWithQuestion("other")
	snap := &corpus.Snapshot{
		Entries: []*entity.FaqEntry{multi, multi, other},
		Vectors: [][]float32{{0, 1}, {1, 0}, {0.6, 0.8}},
	}

	got := Rank([]float32{1, 0}, snap, 3)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Entry != multi || got[0].Score != 1.0 {
		t.Errorf("top = (%q, %v), want (multi, 1.0)", got[0].Entry.Question, got[0].Score)
	}
	if got[1].Entry != other {
		t.Errorf("second = %q, want other", got[1].Entry.Question)
	}
}

func TestRankDegenerateInput(t *testing.T) {
	snap := &corpus.Snapshot{
		Entries: []*entity.FaqEntry{entryWithQuestion("q")},
		Vectors: [][]float32{{1, 0}},
	}

	if got := Rank(nil, snap, 3); got != nil {
		t.Errorf("empty query: got %v, want nil", got)
	}
	if got := Rank([]float32{1, 0}, nil, 3); got != nil {
		t.Errorf("nil snapshot: got %v, want nil", got)
	}
	if got := Rank([]float32{1, 0}, snap, 0); got != nil {
		t.Errorf("k=0: got %v, want nil", got)
	}
	if got := Rank([]float32{1, 0}, &corpus.Snapshot{}, 3); len(got) != 0 {
		t.Errorf("empty corpus: len = %d, want 0", len(got))
	}
}

func TestRankSkipsOrphanVectors(t *testing.T) {
	only := entryWithQuestion("only")
	snap := &corpus.Snapshot{
		Entries: []*entity.FaqEntry{only},
		Vectors: [][]float32{{1, 0}, {0.9, 0.1}},
	}

	got := Rank([]float32{1, 0}, snap, 3)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Entry != only {
		t.Errorf("entry = %q, want only", got[0].Entry.Question)
	}
}
