package cli

import (
	"context"
	"time"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/pkg/resolve/corpus"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Embed the FAQ corpus and rewrite the vector store",
		Long:  "Embeds every entry question plus each scenario paraphrase variant and replaces the stored vector set. Run after editing the FAQ corpus.",
		Args:  cobra.NoArgs,
		Run:   runEncode,
	}

	RootCmd.AddCommand(cmd)
}

func runEncode(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	embedder := buildEmbedder(cfg)
	faqRepo, embRepo := buildStores(cfg)

	ctx := context.Background()
	entries, err := faqRepo.FindAll(ctx)
	if err != nil {
		exitErr("load corpus", err)
	}

	var embeddings []*entity.FaqEmbedding
	for _, entry := range entries {
		for _, text := range corpus.Texts(entry) {
			res, err := embedder.Generate(text, "RETRIEVAL_DOCUMENT")
			if err != nil {
				exitErr("embed \""+text+"\"", err)
			}
			embeddings = append(embeddings, &entity.FaqEmbedding{
				Id:             uuid.New(),
				FaqEntryId:     entry.Id,
				EmbeddingValue: res.Embedding.Values,
				CreatedAt:      time.Now(),
			})
		}
		color.Cyan("encoded: %s", entry.Question)
	}

	if err := embRepo.ReplaceAll(ctx, embeddings); err != nil {
		exitErr("write vector store", err)
	}

	color.Green("done: %d entries, %d vectors", len(entries), len(embeddings))
}
