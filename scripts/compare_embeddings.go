//go:build ignore

package main

import (
	"fmt"
	"log"

	"faq-assistant-be/internal/config"
	"faq-assistant-be/pkg/embedding"
	"faq-assistant-be/pkg/resolve/rank"
)

// Sanity-checks the configured embedding provider against the tier
// thresholds: a paraphrase pair should land above the probable threshold,
// an unrelated pair below it. Run with `go run scripts/compare_embeddings.go`.
func main() {
	cfg := config.Load()

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
	} else {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	query := "mon débit internet est très lent"
	paraphrase := "ma connexion est lente depuis hier"
	unrelated := "quels sont vos horaires d'ouverture"

	fmt.Printf("Provider: %s\n", cfg.Ai.EmbeddingProvider)
	fmt.Printf("Thresholds: exact=%.2f probable=%.2f\n\n", cfg.Resolver.ExactThreshold, cfg.Resolver.ProbableThreshold)

	qv := embed(provider, query, "RETRIEVAL_QUERY")
	fmt.Printf("Query: %q (%d dims)\n\n", query, len(qv))

	for _, doc := range []string{paraphrase, unrelated} {
		dv := embed(provider, doc, "RETRIEVAL_DOCUMENT")
		sim := rank.CosineSimilarity(qv, dv)
		verdict := "uncertain"
		switch {
		case sim >= cfg.Resolver.ExactThreshold:
			verdict = "exact"
		case sim >= cfg.Resolver.ProbableThreshold:
			verdict = "probable"
		}
		fmt.Printf("  %.4f  [%s]  %q\n", sim, verdict, doc)
	}
}

func embed(p embedding.EmbeddingProvider, text, taskType string) []float32 {
	res, err := p.Generate(text, taskType)
	if err != nil {
		log.Fatalf("embed %q: %v", text, err)
	}
	return res.Embedding.Values
}
