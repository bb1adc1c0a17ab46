package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScenarioRuleDTO struct {
	Pattern  string `json:"pattern" validate:"required"`
	Response string `json:"response" validate:"required"`
}

type ScenarioStepDTO struct {
	Question string            `json:"question" validate:"required"`
	Answers  []ScenarioRuleDTO `json:"answers" validate:"required,min=1,dive"`
}

type ScenarioDTO struct {
	Steps       []ScenarioStepDTO `json:"steps" validate:"required,min=1,dive"`
	ExitPhrases []string          `json:"exit_phrases"`
}

type CreateFaqRequest struct {
	Type     string       `json:"type" validate:"required,oneof=simple scenario"`
	Question string       `json:"question" validate:"required"`
	Answer   string       `json:"answer" validate:"required"`
	Scenario *ScenarioDTO `json:"scenario,omitempty"`
}

type UpdateFaqRequest struct {
	Type     string       `json:"type" validate:"required,oneof=simple scenario"`
	Question string       `json:"question" validate:"required"`
	Answer   string       `json:"answer" validate:"required"`
	Scenario *ScenarioDTO `json:"scenario,omitempty"`
}

type FaqResponse struct {
	Id        uuid.UUID    `json:"id"`
	Type      string       `json:"type"`
	Question  string       `json:"question"`
	Answer    string       `json:"answer"`
	Scenario  *ScenarioDTO `json:"scenario,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}
