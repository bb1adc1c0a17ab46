package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"faq-assistant-be/internal/entity"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "convert [legacy.json]",
		Short: "Import a legacy flat Q/A dump into the FAQ store",
		Long:  "Reads a legacy dump of {question, answer} pairs, groups paraphrases that share an answer into scenario entries, and writes the result to the configured FAQ store.",
		Args:  cobra.ExactArgs(1),
		Run:   runConvert,
	}

	RootCmd.AddCommand(cmd)
}

type legacyPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// junkAnswers are informal test replies found in old dumps, skipped on import.
var junkAnswers = map[string]struct{}{
	"haha":    {},
	"rep":     {},
	"loooool": {},
	"ok":      {},
}

func runConvert(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read legacy dump", err)
	}
	var pairs []legacyPair
	if err := json.Unmarshal(raw, &pairs); err != nil {
		exitErr("parse legacy dump", err)
	}

	// Group paraphrases by answer, keeping first-seen order.
	var order []string
	groups := make(map[string][]string)
	for _, p := range pairs {
		if _, junk := junkAnswers[strings.ToLower(p.Answer)]; junk {
			continue
		}
		if _, seen := groups[p.Answer]; !seen {
			order = append(order, p.Answer)
		}
		groups[p.Answer] = append(groups[p.Answer], p.Question)
	}

	cfg := loadConfig()
	faqRepo, _ := buildStores(cfg)
	ctx := context.Background()

	simple, scenarios := 0, 0
	for _, answer := range order {
		questions := groups[answer]
		entry := &entity.FaqEntry{
			Id:        uuid.New(),
			Type:      entity.FaqTypeSimple,
			Question:  questions[0],
			Answer:    answer,
			CreatedAt: time.Now(),
		}
		if len(questions) > 1 {
			entry.Type = entity.FaqTypeScenario
			entry.Scenario = scenarioFromVariants(questions, answer)
			scenarios++
		} else {
			simple++
		}
		if err := faqRepo.Create(ctx, entry); err != nil {
			exitErr("store entry", err)
		}
	}

	color.Green("converted: %d simple, %d scenario entries", simple, scenarios)
	fmt.Fprintln(os.Stderr, "run `faqctl encode` to embed the new corpus")
}

// scenarioFromVariants builds a one-step clarification scenario whose rules
// match each paraphrase variant, with a catch-all so any reply still resolves.
func scenarioFromVariants(questions []string, answer string) *entity.Scenario {
	step := entity.ScenarioStep{Question: "Pouvez-vous préciser votre demande ?"}
	for _, q := range questions {
		cleaned := strings.NewReplacer("?", "", ".", "").Replace(strings.ToLower(q))
		step.Answers = append(step.Answers, entity.ScenarioRule{
			Pattern:  ".*" + cleaned + ".*",
			Response: answer,
		})
	}
	step.Answers = append(step.Answers, entity.ScenarioRule{Pattern: ".*", Response: answer})

	return &entity.Scenario{
		Steps:       []entity.ScenarioStep{step},
		ExitPhrases: []string{"annuler", "stop", "quitter"},
	}
}
