// Package tier maps ranked candidates to one of three response modes:
// exact answer, probable answer with suggestions, or clarification prompt.
package tier

import (
	"errors"
	"sync/atomic"

	"faq-assistant-be/internal/constant"
	"faq-assistant-be/pkg/resolve/rank"
)

const (
	TierExact     = "exact"
	TierProbable  = "probable"
	TierUncertain = "uncertain"

	// Suggestions come from ranking positions 2 and 3.
	maxSuggestions = 2
)

// Thresholds is an immutable threshold pair. The uncertain tier is everything
// below Probable.
type Thresholds struct {
	Exact    float64
	Probable float64
}

var ErrInvalidThresholds = errors.New("thresholds must satisfy 0 < probable <= exact")

func (t Thresholds) Validate() error {
	if t.Probable <= 0 || t.Probable > t.Exact {
		return ErrInvalidThresholds
	}
	return nil
}

// Result is the selector's outcome for a single query.
type Result struct {
	Answer      string
	Suggestions []string
	Tier        string
	Confidence  float64
}

// Selector applies the active thresholds to a ranking. Thresholds are swapped
// atomically so an administrative update takes effect on the next request
// without tearing a concurrent read.
type Selector struct {
	thresholds atomic.Pointer[Thresholds]
}

func NewSelector(initial Thresholds) (*Selector, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	s := &Selector{}
	s.thresholds.Store(&initial)
	return s, nil
}

func (s *Selector) Thresholds() Thresholds {
	return *s.thresholds.Load()
}

// SetThresholds installs a new threshold pair. Updates that violate the tier
// ordering are refused so the tier logic can never be silently corrupted.
func (s *Selector) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.thresholds.Store(&t)
	return nil
}

// Select maps ranked candidates to a response. Boundary scores are inclusive:
// a score exactly at Exact selects the exact tier.
func (s *Selector) Select(candidates []rank.Candidate, originalQuery string) Result {
	if len(candidates) == 0 {
		return Result{
			Answer:      constant.FallbackMessage,
			Suggestions: genericSuggestions(),
			Tier:        TierUncertain,
		}
	}

	t := s.Thresholds()
	top := candidates[0]

	switch {
	case top.Score >= t.Exact:
		return Result{
			Answer:     top.Entry.Answer,
			Tier:       TierExact,
			Confidence: top.Score,
		}
	case top.Score >= t.Probable:
		return Result{
			Answer:      top.Entry.Answer,
			Suggestions: suggestionsFrom(candidates, originalQuery),
			Tier:        TierProbable,
			Confidence:  top.Score,
		}
	default:
		return Result{
			Answer:      constant.ClarificationPrompt,
			Suggestions: genericSuggestions(),
			Tier:        TierUncertain,
		}
	}
}

// suggestionsFrom collects the questions of the next-ranked candidates,
// deduplicated by exact string match and excluding the original query.
func suggestionsFrom(candidates []rank.Candidate, originalQuery string) []string {
	var suggestions []string
	seen := map[string]bool{originalQuery: true}

	for _, c := range candidates[1:] {
		q := c.Entry.Question
		if seen[q] {
			continue
		}
		seen[q] = true
		suggestions = append(suggestions, q)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func genericSuggestions() []string {
	out := make([]string, len(constant.GenericSuggestions))
	copy(out, constant.GenericSuggestions)
	return out
}
