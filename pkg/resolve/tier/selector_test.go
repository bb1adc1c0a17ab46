package tier

import (
	"testing"

	"faq-assistant-be/internal/constant"
	"faq-assistant-be/internal/entity"
	"faq-assistant-be/pkg/resolve/rank"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func candidate(question, answer string, score float64) rank.Candidate {
	return rank.Candidate{
		Entry: &entity.FaqEntry{
			Id:       uuid.New(),
			Type:     entity.FaqTypeSimple,
			Question: question,
			Answer:   answer,
		},
		Score: score,
	}
}

func newTestSelector(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector(Thresholds{Exact: 0.80, Probable: 0.45})
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return s
}

func TestSelectTiers(t *testing.T) {
	s := newTestSelector(t)

	tests := []struct {
		name       string
		score      float64
		wantTier   string
		wantAnswer string
	}{
		{"above exact", 0.95, TierExact, "answer"},
		{"exactly at exact boundary", 0.80, TierExact, "answer"},
		{"probable", 0.60, TierProbable, "answer"},
		{"exactly at probable boundary", 0.45, TierProbable, "answer"},
		{"below probable", 0.30, TierUncertain, constant.ClarificationPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Select([]rank.Candidate{candidate("q", "answer", tt.score)}, "query")

			if got.Tier != tt.wantTier {
				t.Errorf("Tier = %q, want %q", got.Tier, tt.wantTier)
			}
			if got.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
		})
	}
}

func TestSelectExactTierHasNoSuggestions(t *testing.T) {
	s := newTestSelector(t)

	got := s.Select([]rank.Candidate{
		candidate("q1", "a1", 0.92),
		candidate("q2", "a2", 0.70),
	}, "query")

	assert.Equal(t, TierExact, got.Tier)
	assert.Empty(t, got.Suggestions)
	assert.Equal(t, 0.92, got.Confidence)
}

func TestSelectProbableSuggestions(t *testing.T) {
	s := newTestSelector(t)

	got := s.Select([]rank.Candidate{
		candidate("q1", "a1", 0.60),
		candidate("q2", "a2", 0.55),
		candidate("q3", "a3", 0.50),
	}, "query")

	assert.Equal(t, TierProbable, got.Tier)
	assert.Equal(t, []string{"q2", "q3"}, got.Suggestions)
}

func TestSelectSuggestionsExcludeQueryAndDuplicates(t *testing.T) {
	s := newTestSelector(t)

	got := s.Select([]rank.Candidate{
		candidate("q1", "a1", 0.60),
		candidate("query", "a2", 0.55),
		candidate("q3", "a3", 0.52),
		candidate("q3", "a3", 0.50),
		candidate("q4", "a4", 0.48),
	}, "query")

	// The original query and the repeated question are skipped; the cap is 2.
	assert.Equal(t, []string{"q3", "q4"}, got.Suggestions)
}

func TestSelectEmptyCandidates(t *testing.T) {
	s := newTestSelector(t)

	got := s.Select(nil, "query")

	assert.Equal(t, TierUncertain, got.Tier)
	assert.Equal(t, constant.FallbackMessage, got.Answer)
	assert.Equal(t, constant.GenericSuggestions, got.Suggestions)
	assert.Zero(t, got.Confidence)
}

func TestSelectUncertainUsesGenericSuggestions(t *testing.T) {
	s := newTestSelector(t)

	got := s.Select([]rank.Candidate{candidate("q1", "a1", 0.10)}, "query")

	assert.Equal(t, constant.GenericSuggestions, got.Suggestions)
	assert.Zero(t, got.Confidence)
}

func TestSetThresholds(t *testing.T) {
	s := newTestSelector(t)

	assert.NoError(t, s.SetThresholds(Thresholds{Exact: 0.90, Probable: 0.50}))
	assert.Equal(t, Thresholds{Exact: 0.90, Probable: 0.50}, s.Thresholds())

	// A score that was probable under the old pair is now uncertain.
	got := s.Select([]rank.Candidate{candidate("q", "a", 0.47)}, "query")
	assert.Equal(t, TierUncertain, got.Tier)
}

func TestSetThresholdsRejectsInvalid(t *testing.T) {
	s := newTestSelector(t)

	tests := []struct {
		name string
		in   Thresholds
	}{
		{"probable above exact", Thresholds{Exact: 0.50, Probable: 0.80}},
		{"zero probable", Thresholds{Exact: 0.80, Probable: 0}},
		{"negative probable", Thresholds{Exact: 0.80, Probable: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetThresholds(tt.in)
			assert.ErrorIs(t, err, ErrInvalidThresholds)
			// The active pair is untouched.
			assert.Equal(t, Thresholds{Exact: 0.80, Probable: 0.45}, s.Thresholds())
		})
	}
}

func TestNewSelectorRejectsInvalid(t *testing.T) {
	_, err := NewSelector(Thresholds{Exact: 0.40, Probable: 0.45})
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}
