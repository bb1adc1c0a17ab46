package resolve

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"faq-assistant-be/internal/constant"
	"faq-assistant-be/internal/entity"
	"faq-assistant-be/pkg/embedding"
	"faq-assistant-be/pkg/resolve/corpus"
	"faq-assistant-be/pkg/resolve/history"
	"faq-assistant-be/pkg/resolve/scenario"
	"faq-assistant-be/pkg/resolve/tier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubEmbedder maps exact texts to fixed vectors.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	vec, ok := s.vectors[text]
	if !ok {
		vec = []float32{0, 0, 1}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

type recordedReport struct {
	Score    float64
	Question string
}

type recordingReporter struct {
	reports []recordedReport
}

func (r *recordingReporter) Report(ts time.Time, score float64, question string) {
	r.reports = append(r.reports, recordedReport{Score: score, Question: question})
}

type fixture struct {
	resolver *Resolver
	reporter *recordingReporter
	embedder *stubEmbedder
	selector *tier.Selector
}

func newFixture(t *testing.T, entries []*entity.FaqEntry, vectors [][]float32) *fixture {
	t.Helper()

	selector, err := tier.NewSelector(tier.Thresholds{Exact: 0.80, Probable: 0.45})
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	quiet := log.New(io.Discard, "", 0)
	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	reporter := &recordingReporter{}
	store := corpus.NewStore(&corpus.Snapshot{Entries: entries, Vectors: vectors})

	return &fixture{
		resolver: NewResolver(
			store,
			embedder,
			selector,
			scenario.NewManager(time.Hour, quiet),
			history.NewStore(10, time.Hour),
			reporter,
			3,
			quiet,
		),
		reporter: reporter,
		embedder: embedder,
		selector: selector,
	}
}

func simpleEntry(question, answer string) *entity.FaqEntry {
	return &entity.FaqEntry{
		Id:       uuid.New(),
		Type:     entity.FaqTypeSimple,
		Question: question,
		Answer:   answer,
	}
}

func scenarioEntry(question, answer string) *entity.FaqEntry {
	return &entity.FaqEntry{
		Id:       uuid.New(),
		Type:     entity.FaqTypeScenario,
		Question: question,
		Answer:   answer,
		Scenario: &entity.Scenario{
			Steps: []entity.ScenarioStep{
				{
					Question: "Fibre ou ADSL ?",
					Answers: []entity.ScenarioRule{
						{Pattern: ".*fibre.*", Response: "Vérifiez votre box fibre."},
						{Pattern: ".*", Response: "Vérifiez votre box."},
					},
				},
			},
			ExitPhrases: []string{"annuler"},
		},
	}
}

func TestResolveExactAnswer(t *testing.T) {
	entry := simpleEntry("horaires d'ouverture", "Nous sommes ouverts de 9h à 18h.")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["quels sont vos horaires"] = []float32{1, 0, 0}

	got := f.resolver.Resolve("s1", "quels sont vos horaires")

	assert.Equal(t, tier.TierExact, got.Tier)
	assert.Equal(t, "Nous sommes ouverts de 9h à 18h.", got.Answer)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Empty(t, got.Suggestions)
	assert.Empty(t, f.reporter.reports)
}

func TestResolveUncertainReportsUnanswered(t *testing.T) {
	entry := simpleEntry("horaires", "9h-18h")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["question hors sujet"] = []float32{0, 1, 0}

	got := f.resolver.Resolve("s1", "question hors sujet")

	assert.Equal(t, tier.TierUncertain, got.Tier)
	assert.Equal(t, constant.ClarificationPrompt, got.Answer)
	if assert.Len(t, f.reporter.reports, 1) {
		assert.Equal(t, "question hors sujet", f.reporter.reports[0].Question)
		assert.InDelta(t, 0.0, f.reporter.reports[0].Score, 1e-9)
	}
}

func TestResolveProbableDoesNotReport(t *testing.T) {
	entry := simpleEntry("horaires", "9h-18h")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	// cos = 0.6
	f.embedder.vectors["horaire approximatif"] = []float32{0.6, 0.8, 0}

	got := f.resolver.Resolve("s1", "horaire approximatif")

	assert.Equal(t, tier.TierProbable, got.Tier)
	assert.Empty(t, f.reporter.reports)
}

func TestResolveEmptyCorpusReportsZeroScore(t *testing.T) {
	f := newFixture(t, nil, nil)

	got := f.resolver.Resolve("s1", "bonjour")

	assert.Equal(t, constant.FallbackMessage, got.Answer)
	if assert.Len(t, f.reporter.reports, 1) {
		assert.Zero(t, f.reporter.reports[0].Score)
	}
}

func TestResolveStartsScenario(t *testing.T) {
	entry := scenarioEntry("problème de connexion", "Je vais vous aider.")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["ma connexion ne marche pas"] = []float32{1, 0, 0}

	got := f.resolver.Resolve("s1", "ma connexion ne marche pas")

	assert.Equal(t, TierScenarioStart, got.Tier)
	assert.Equal(t, "Je vais vous aider.\n\nFibre ou ADSL ?", got.Answer)
	assert.Equal(t, 1.0, got.Confidence)

	// The next utterance is consumed by the scenario, not ranked.
	got = f.resolver.Resolve("s1", "j'ai la fibre")
	assert.Equal(t, TierScenario, got.Tier)
	assert.Equal(t, "Vérifiez votre box fibre.", got.Answer)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Empty(t, f.reporter.reports)
}

func TestResolveBelowThresholdDoesNotStartScenario(t *testing.T) {
	entry := scenarioEntry("problème de connexion", "Je vais vous aider.")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["sujet lointain"] = []float32{0.2, 0.98, 0}

	got := f.resolver.Resolve("s1", "sujet lointain")

	assert.Equal(t, tier.TierUncertain, got.Tier)
	// A later message is ranked normally, no scenario is active.
	assert.Len(t, f.reporter.reports, 1)
}

func TestResolveScenarioSessionsAreIsolated(t *testing.T) {
	entry := scenarioEntry("problème de connexion", "Je vais vous aider.")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["ma connexion ne marche pas"] = []float32{1, 0, 0}

	f.resolver.Resolve("s1", "ma connexion ne marche pas")

	// Another session ranks normally even though s1 is mid-scenario.
	got := f.resolver.Resolve("s2", "ma connexion ne marche pas")
	assert.Equal(t, TierScenarioStart, got.Tier)
}

func TestResolveRecordsHistory(t *testing.T) {
	entry := simpleEntry("horaires", "9h-18h")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["horaires"] = []float32{1, 0, 0}

	f.resolver.Resolve("s1", "horaires")

	turns := f.resolver.History("s1")
	if assert.Len(t, turns, 1) {
		assert.Equal(t, "horaires", turns[0].User)
		assert.Equal(t, "9h-18h", turns[0].Bot)
	}
}

func TestResolveEmbedderFailureDegrades(t *testing.T) {
	entry := simpleEntry("horaires", "9h-18h")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.err = errors.New("provider down")

	got := f.resolver.Resolve("s1", "horaires")

	assert.Equal(t, constant.FallbackMessage, got.Answer)
	assert.Equal(t, tier.TierUncertain, got.Tier)
}

func TestResolveThresholdChangeAppliesToNextRequest(t *testing.T) {
	entry := simpleEntry("horaires", "9h-18h")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["horaire approximatif"] = []float32{0.6, 0.8, 0} // cos = 0.6

	got := f.resolver.Resolve("s1", "horaire approximatif")
	assert.Equal(t, tier.TierProbable, got.Tier)

	assert.NoError(t, f.selector.SetThresholds(tier.Thresholds{Exact: 0.80, Probable: 0.70}))

	got = f.resolver.Resolve("s1", "horaire approximatif")
	assert.Equal(t, tier.TierUncertain, got.Tier)
}

func TestEndSession(t *testing.T) {
	entry := scenarioEntry("problème de connexion", "Je vais vous aider.")
	f := newFixture(t, []*entity.FaqEntry{entry}, [][]float32{{1, 0, 0}})
	f.embedder.vectors["ma connexion ne marche pas"] = []float32{1, 0, 0}

	f.resolver.Resolve("s1", "ma connexion ne marche pas")
	f.resolver.EndSession("s1")

	assert.Empty(t, f.resolver.History("s1"))
	// The scenario is gone too: the same utterance restarts it.
	got := f.resolver.Resolve("s1", "ma connexion ne marche pas")
	assert.Equal(t, TierScenarioStart, got.Tier)
}
