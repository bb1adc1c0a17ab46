// Package scenario drives multi-step clarification dialogues. A session is
// either outside any scenario or awaiting the reply for one step; replies are
// matched against the step's ordered rule list, first match wins.
package scenario

import (
	"hash/fnv"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"faq-assistant-be/internal/constant"
	"faq-assistant-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const lockStripes = 64

// State is the per-session scenario progress. StepIndex always stays within
// the bounds of Scenario.Steps. Data is reserved for future step extensions.
type State struct {
	Scenario  *entity.Scenario
	StepIndex int
	Data      map[string]interface{}
}

// Manager keeps active scenario states keyed by session id. Idle sessions
// expire via the cache TTL. Mutations for one session are serialized through
// a striped lock; distinct sessions proceed in parallel.
type Manager struct {
	states *cache.Cache
	locks  [lockStripes]sync.Mutex
	logger *log.Logger
}

func NewManager(sessionTTL time.Duration, logger *log.Logger) *Manager {
	if sessionTTL <= 0 {
		sessionTTL = 1 * time.Hour
	}
	return &Manager{
		states: cache.New(sessionTTL, 10*time.Minute),
		logger: logger,
	}
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &m.locks[h.Sum32()%lockStripes]
}

// Start creates or overwrites the session's scenario state at step 0.
// A session never stacks scenarios; starting a new one replaces the old.
func (m *Manager) Start(sessionID string, sc *entity.Scenario) {
	if sc == nil || len(sc.Steps) == 0 {
		return
	}
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	m.states.Set(sessionID, &State{
		Scenario: sc,
		Data:     make(map[string]interface{}),
	}, cache.DefaultExpiration)
	m.logger.Printf("[SCENARIO] Started for session %s (%d steps)", sessionID, len(sc.Steps))
}

// Active reports whether the session is currently mid-scenario.
func (m *Manager) Active(sessionID string) bool {
	_, found := m.states.Get(sessionID)
	return found
}

// Clear drops any scenario state for the session.
func (m *Manager) Clear(sessionID string) {
	m.states.Delete(sessionID)
}

// HandleInput advances the session's scenario with the user's reply.
// handled is false when the session has no active scenario, in which case the
// caller falls through to normal ranking. An unknown or expired session is
// indistinguishable from "no scenario" and never an error.
func (m *Manager) HandleInput(sessionID, userText string) (reply string, handled bool) {
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	raw, found := m.states.Get(sessionID)
	if !found {
		return "", false
	}
	state := raw.(*State)
	step := state.Scenario.Steps[state.StepIndex]

	if matchesExitPhrase(state.Scenario.ExitPhrases, userText) {
		m.states.Delete(sessionID)
		m.logger.Printf("[SCENARIO] Cancelled by exit phrase for session %s", sessionID)
		return constant.ScenarioCancelled, true
	}

	for _, rule := range step.Answers {
		if !ruleMatches(rule.Pattern, userText) {
			continue
		}

		if state.StepIndex+1 < len(state.Scenario.Steps) {
			state.StepIndex++
			m.states.Set(sessionID, state, cache.DefaultExpiration)
			next := state.Scenario.Steps[state.StepIndex]
			m.logger.Printf("[SCENARIO] Session %s advanced to step %d", sessionID, state.StepIndex)
			return rule.Response + "\n\n" + next.Question, true
		}

		m.states.Delete(sessionID)
		m.logger.Printf("[SCENARIO] Completed for session %s", sessionID)
		return rule.Response, true
	}

	// No rule matched: stay on the same step and re-ask its question.
	// A step authored without a catch-all rule loops here until an exit phrase.
	return constant.ScenarioNotUnderstood + step.Question, true
}

func matchesExitPhrase(exitPhrases []string, userText string) bool {
	lowered := strings.ToLower(userText)
	for _, phrase := range exitPhrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// ruleMatches runs a case-insensitive, unanchored regexp search against the
// raw user text. Invalid patterns are an authoring defect and simply never
// match.
func ruleMatches(pattern, userText string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return false
	}
	return re.MatchString(userText)
}
