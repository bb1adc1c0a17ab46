package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	FaqTypeSimple   = "simple"
	FaqTypeScenario = "scenario"
)

type FaqEntry struct {
	Id        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Scenario  *Scenario  `json:"scenario,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Scenario is a multi-step clarification dialogue attached to a FAQ entry
// whose representative question covers several paraphrase variants.
type Scenario struct {
	Steps       []ScenarioStep `json:"steps"`
	ExitPhrases []string       `json:"exit_phrases"`
}

type ScenarioStep struct {
	Question string         `json:"question"`
	Answers  []ScenarioRule `json:"answers"`
}

// ScenarioRule pairs a regex pattern with the response returned when the
// pattern is found in the user input. Rules are evaluated in declared order;
// authors are expected to close each step with a catch-all ".*" rule.
type ScenarioRule struct {
	Pattern  string `json:"pattern"`
	Response string `json:"response"`
}
