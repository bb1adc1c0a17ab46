// Package resolve implements the conversational resolution engine: an active
// scenario consumes the utterance first, otherwise the corpus is ranked and
// the tier selector picks the response mode, possibly starting a new scenario.
package resolve

import (
	"log"
	"time"

	"faq-assistant-be/pkg/embedding"
	"faq-assistant-be/pkg/resolve/corpus"
	"faq-assistant-be/pkg/resolve/history"
	"faq-assistant-be/pkg/resolve/rank"
	"faq-assistant-be/pkg/resolve/scenario"
	"faq-assistant-be/pkg/resolve/tier"
)

const (
	TierScenario      = "scenario"
	TierScenarioStart = "scenario_start"

	// Confidence reported while a scenario handles the exchange.
	scenarioConfidence = 1.0
)

// UnansweredReporter receives queries the corpus could not answer.
// Implementations are fire-and-forget; failures never block the answer path.
type UnansweredReporter interface {
	Report(timestamp time.Time, score float64, question string)
}

// Resolution is the engine's reply for one utterance.
type Resolution struct {
	Answer      string
	Confidence  float64
	Suggestions []string
	Tier        string
}

// Resolver wires the engine components together. One instance serves all
// sessions; per-session state lives in the scenario manager and the history
// store, both safe for concurrent use.
type Resolver struct {
	corpus    *corpus.Store
	embedder  embedding.EmbeddingProvider
	selector  *tier.Selector
	scenarios *scenario.Manager
	memory    *history.Store
	reporter  UnansweredReporter
	topK      int
	logger    *log.Logger
}

func NewResolver(
	corpusStore *corpus.Store,
	embedder embedding.EmbeddingProvider,
	selector *tier.Selector,
	scenarios *scenario.Manager,
	memory *history.Store,
	reporter UnansweredReporter,
	topK int,
	logger *log.Logger,
) *Resolver {
	if topK <= 0 {
		topK = 3
	}
	return &Resolver{
		corpus:    corpusStore,
		embedder:  embedder,
		selector:  selector,
		scenarios: scenarios,
		memory:    memory,
		reporter:  reporter,
		topK:      topK,
		logger:    logger,
	}
}

// Resolve answers one utterance for one session. It never returns an error:
// every failure degrades to a fixed fallback response.
func (r *Resolver) Resolve(sessionID, utterance string) Resolution {
	// An active scenario owns the session until completion or cancellation.
	if reply, handled := r.scenarios.HandleInput(sessionID, utterance); handled {
		r.memory.Add(sessionID, utterance, reply)
		return Resolution{Answer: reply, Confidence: scenarioConfidence, Tier: TierScenario}
	}

	snap := r.corpus.Load()
	candidates := r.rankQuery(utterance, snap)
	mainThreshold := r.selector.Thresholds().Probable

	// Scenario entry piggybacks on the main threshold: a confident match on
	// an entry that declares a scenario opens the dialogue instead of
	// answering directly.
	if len(candidates) > 0 {
		top := candidates[0]
		if top.Score >= mainThreshold && top.Entry.Scenario != nil && len(top.Entry.Scenario.Steps) > 0 {
			r.scenarios.Start(sessionID, top.Entry.Scenario)
			answer := top.Entry.Answer + "\n\n" + top.Entry.Scenario.Steps[0].Question
			r.memory.Add(sessionID, utterance, answer)
			return Resolution{Answer: answer, Confidence: top.Score, Tier: TierScenarioStart}
		}
	}

	result := r.selector.Select(candidates, utterance)

	topScore := 0.0
	if len(candidates) > 0 {
		topScore = candidates[0].Score
	}
	if topScore < mainThreshold && r.reporter != nil {
		r.reporter.Report(time.Now(), topScore, utterance)
	}

	r.memory.Add(sessionID, utterance, result.Answer)
	return Resolution{
		Answer:      result.Answer,
		Confidence:  result.Confidence,
		Suggestions: result.Suggestions,
		Tier:        result.Tier,
	}
}

// History exposes the session's rolling memory to the transport layer.
func (r *Resolver) History(sessionID string) []history.Turn {
	return r.memory.Get(sessionID)
}

// EndSession drops all per-session state.
func (r *Resolver) EndSession(sessionID string) {
	r.scenarios.Clear(sessionID)
	r.memory.Clear(sessionID)
}

func (r *Resolver) rankQuery(utterance string, snap *corpus.Snapshot) []rank.Candidate {
	if snap.Len() == 0 {
		return nil
	}
	embeddingRes, err := r.embedder.Generate(utterance, "RETRIEVAL_QUERY")
	if err != nil {
		r.logger.Printf("[ERROR] Query embedding failed: %v", err)
		return nil
	}
	return rank.Rank(embeddingRes.Embedding.Values, snap, r.topK)
}
