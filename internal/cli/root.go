// Package cli implements the faqctl commands: one-shot resolution, corpus
// encoding, and legacy dump conversion.
package cli

import (
	"fmt"
	"log"
	"os"

	"faq-assistant-be/internal/config"
	"faq-assistant-be/internal/repository/contract"
	"faq-assistant-be/internal/repository/file"
	"faq-assistant-be/internal/repository/implementation"
	"faq-assistant-be/pkg/database"
	"faq-assistant-be/pkg/embedding"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "faqctl",
	Short: "FAQ corpus tooling",
	Long:  "Maintenance commands for the FAQ resolution service: ask one question, encode the corpus embeddings, or convert a legacy flat Q/A dump.",
}

func loadConfig() *config.Config {
	return config.Load()
}

func buildEmbedder(cfg *config.Config) embedding.EmbeddingProvider {
	if cfg.Ai.EmbeddingProvider == "gemini" {
		return embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
	}
	return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
}

func buildStores(cfg *config.Config) (contract.FaqRepository, contract.FaqEmbeddingRepository) {
	if cfg.Store.Backend == "postgres" {
		db, err := database.NewGormDBFromDSN(cfg.Store.Connection)
		if err != nil {
			exitErr("connect database", err)
		}
		return implementation.NewFaqRepository(db), implementation.NewFaqEmbeddingRepository(db)
	}
	fileStore := file.NewStore(cfg.Store.FaqFilePath, cfg.Store.VectorFilePath)
	return fileStore, file.NewEmbeddingStore(fileStore)
}

// quietLogger keeps engine debug output away from the CLI's stdout.
func quietLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
