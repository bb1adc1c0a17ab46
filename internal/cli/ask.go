package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"faq-assistant-be/pkg/resolve"
	"faq-assistant-be/pkg/resolve/corpus"
	"faq-assistant-be/pkg/resolve/history"
	"faq-assistant-be/pkg/resolve/scenario"
	"faq-assistant-be/pkg/resolve/tier"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Resolve one question against the corpus",
		Long:  "One-shot resolution: embeds the question, ranks it against the encoded corpus, and prints the answer with its confidence as JSON.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}

	RootCmd.AddCommand(cmd)
}

type askOutput struct {
	Answer      string   `json:"answer"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")

	cfg := loadConfig()
	faqRepo, faqEmbRepo := buildStores(cfg)

	entries, err := faqRepo.FindAll(cmd.Context())
	if err != nil {
		exitErr("load faq entries", err)
	}
	embeddings, err := faqEmbRepo.FindAll(cmd.Context())
	if err != nil {
		exitErr("load corpus vectors", err)
	}

	selector, err := tier.NewSelector(tier.Thresholds{
		Exact:    cfg.Resolver.ExactThreshold,
		Probable: cfg.Resolver.ProbableThreshold,
	})
	if err != nil {
		exitErr("invalid thresholds", err)
	}

	engineLog := quietLogger()
	resolver := resolve.NewResolver(
		corpus.NewStore(corpus.Build(entries, embeddings)),
		buildEmbedder(cfg),
		selector,
		scenario.NewManager(cfg.Resolver.SessionTTL, engineLog),
		history.NewStore(cfg.Resolver.HistoryCapacity, cfg.Resolver.SessionTTL),
		nil, // one-shot invocations do not feed the unanswered log
		cfg.Resolver.TopK,
		engineLog,
	)

	resolution := resolver.Resolve(uuid.New().String(), question)

	out, _ := json.Marshal(askOutput{
		Answer:      resolution.Answer,
		Confidence:  math.Round(resolution.Confidence*100) / 100,
		Suggestions: resolution.Suggestions,
	})
	fmt.Println(string(out))
}
